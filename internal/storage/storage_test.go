package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

var (
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01}
	pdfBytes  = []byte("%PDF-1.4\n%âãÏÓ\n")
)

func TestReadImage(t *testing.T) {
	img, err := ReadImage(bytes.NewReader(pngBytes), 1024)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if img.ContentType != "image/png" || img.Extension != "png" || img.Size() != int64(len(pngBytes)) {
		t.Fatalf("unexpected png metadata: %+v", img)
	}

	img, err = ReadImage(bytes.NewReader(jpegBytes), 1024)
	if err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	if img.Extension != "jpg" {
		t.Fatalf("expected jpg, got %s", img.Extension)
	}

	if _, err := ReadImage(bytes.NewReader(pdfBytes), 1024); !apperror.IsValidation(err) {
		t.Fatalf("pdf must be rejected, got %v", err)
	}
	if _, err := ReadImage(bytes.NewReader(nil), 1024); !apperror.IsValidation(err) {
		t.Fatalf("empty file must be rejected, got %v", err)
	}
	if _, err := ReadImage(bytes.NewReader(pngBytes), 4); !apperror.IsValidation(err) {
		t.Fatalf("oversized file must be rejected, got %v", err)
	}
}

func TestLocalImageStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalImageStore(root, "/media/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	img, err := ReadImage(bytes.NewReader(pngBytes), 1024)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := store.Save(ctx, "requests/u1/r1.png", img); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "requests", "u1", "r1.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Fatalf("stored bytes differ")
	}

	url, err := store.URL(ctx, "requests/u1/r1.png")
	if err != nil || url != "/media/requests/u1/r1.png" {
		t.Fatalf("unexpected url %q, err %v", url, err)
	}

	if err := store.Delete(ctx, "requests/u1/r1.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "requests", "u1", "r1.png")); !os.IsNotExist(err) {
		t.Fatalf("file must be removed")
	}
	if err := store.Delete(ctx, "requests/u1/r1.png"); err != nil {
		t.Fatalf("deleting a missing file must succeed: %v", err)
	}
}

func TestCleanKey(t *testing.T) {
	tests := map[string]string{
		"requests/a/b.png":      "requests/a/b.png",
		"../../etc/passwd":      "etc/passwd",
		"/requests/../x.png":    "x.png",
		`requests\win\file.png`: "requests/win/file.png",
	}
	for in, want := range tests {
		got, err := cleanKey(in)
		if err != nil || got != want {
			t.Fatalf("cleanKey(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := cleanKey("/"); err == nil {
		t.Fatalf("empty key must be rejected")
	}
}
