package request

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/storage"
)

type CreateRequestInput struct {
	ProductType     string
	MaterialDetails string
	StylePreference *string
	PickupLocation  string
	Budget          *float64
	Image           io.Reader
}

type CreateRequestUseCase struct {
	store         repository.Store
	images        storage.ImageStore
	maxImageBytes int64
}

func NewCreateRequestUseCase(store repository.Store, images storage.ImageStore, maxImageBytes int64) *CreateRequestUseCase {
	return &CreateRequestUseCase{store: store, images: images, maxImageBytes: maxImageBytes}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, ownerID uuid.UUID, in CreateRequestInput) (*entity.UpcyclingRequest, error) {
	req, err := entity.NewUpcyclingRequest(entity.NewRequestParams{
		OwnerID:         ownerID,
		ProductType:     in.ProductType,
		MaterialDetails: in.MaterialDetails,
		StylePreference: in.StylePreference,
		PickupLocation:  in.PickupLocation,
		Budget:          in.Budget,
	})
	if err != nil {
		return nil, err
	}

	var imageKey string
	if in.Image != nil {
		if uc.images == nil {
			return nil, apperror.New(apperror.ErrCodeBadRequest, "загрузка изображений отключена")
		}
		img, err := storage.ReadImage(in.Image, uc.maxImageBytes)
		if err != nil {
			return nil, err
		}
		imageKey = fmt.Sprintf("requests/%s/%s.%s", ownerID, req.ID, img.Extension)
		if err := uc.images.Save(ctx, imageKey, img); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить изображение")
		}
		req.SetImage(imageKey)
	}

	if err := uc.store.Requests().Create(ctx, req); err != nil {
		if imageKey != "" {
			if delErr := uc.images.Delete(ctx, imageKey); delErr != nil {
				logger.WithContext(ctx).WithFields(logrus.Fields{
					"key":   imageKey,
					"error": delErr.Error(),
				}).Warn("create request: не удалось удалить изображение")
			}
		}
		return nil, err
	}
	return req, nil
}
