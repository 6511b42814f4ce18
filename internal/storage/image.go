package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"

	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

// ImageStore сохраняет изображения заявок под ключом вида requests/<owner>/<file>.
type ImageStore interface {
	Save(ctx context.Context, key string, img *Image) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// Image - загруженный файл, тип которого определён по содержимому.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Разрешённые типы изображений
var allowedImageTypes = []types.Type{
	matchers.TypeJpeg,
	matchers.TypePng,
	matchers.TypeGif,
	matchers.TypeWebp,
}

// ReadImage читает не более maxBytes и проверяет магические байты.
// Расширение исходного имени файла не учитывается.
func ReadImage(r io.Reader, maxBytes int64) (*Image, error) {
	limited := io.LimitedReader{R: r, N: maxBytes + 1}
	data, err := io.ReadAll(&limited)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать файл")
	}
	if len(data) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл не может быть пустым")
	}
	if int64(len(data)) > maxBytes {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("размер файла превышает лимит %d байт", maxBytes))
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return nil, apperror.New(apperror.ErrCodeValidation, "не удалось определить тип файла. Разрешены только изображения")
	}
	if !isAllowed(kind) {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("неподдерживаемый тип файла (%s). Разрешены JPEG, PNG, GIF и WEBP", kind.MIME.Value))
	}

	return &Image{Data: data, ContentType: kind.MIME.Value, Extension: kind.Extension}, nil
}

func (img *Image) Reader() io.Reader {
	return bytes.NewReader(img.Data)
}

func (img *Image) Size() int64 {
	return int64(len(img.Data))
}

func isAllowed(kind types.Type) bool {
	for _, t := range allowedImageTypes {
		if t.MIME.Value == kind.MIME.Value {
			return true
		}
	}
	return false
}

// cleanKey не даёт ключу выйти за пределы корня хранилища.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("storage: пустой ключ")
	}
	return cleaned, nil
}
