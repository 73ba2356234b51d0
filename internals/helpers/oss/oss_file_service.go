package helper

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller.
Implementasi default menulis ke bucket "attachment" di Aliyun OSS.
*/

type BlobService interface {
	// UploadDocument mengunggah file mentah ke subdir (mis. "surat",
	// "kegiatan/laporan") dan mengembalikan URL publik + objectKey.
	UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, objectKey, contentType string, err error)

	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv membuat instance dari ENV. prefix opsional.
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	if fh == nil {
		return "", "", "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if fh.Size > MaxUploadSize {
		return "", "", "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file melebihi batas 10MB")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return b.svc.PublicURL(key), key, ct, nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	return b.svc.DeleteByPublicURL(ctx, publicURL)
}

// DisabledBlobService dipasang kalau ENV OSS belum lengkap; endpoint
// upload tetap hidup tapi menjawab 503.
type DisabledBlobService struct{}

func (DisabledBlobService) UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	return "", "", "", fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
}

func (DisabledBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	return nil
}
