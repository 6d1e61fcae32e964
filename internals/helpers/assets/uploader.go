package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/configs"
	helper "duomonggo_backend/internals/helpers"
)

// Batas ukuran file mentah sebelum dinormalisasi.
const MaxUploadBytes = 8 << 20

var (
	ErrDisabled   = errors.New("asset upload is not configured")
	ErrNotAnImage = errors.New("file is not a supported image")
	ErrTooLarge   = errors.New("file exceeds upload limit")
)

// Uploader: bytes + folder -> public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
}

// Store menyimpan object yang sudah jadi di penyedia (OSS/S3).
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (publicURL string, err error)
}

type ImageUploader struct {
	store Store
	now   func() time.Time
}

func NewImageUploader(store Store) *ImageUploader {
	return &ImageUploader{store: store, now: time.Now}
}

func (u *ImageUploader) Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNotAnImage
	}
	if fh.Size > MaxUploadBytes {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, io.LimitReader(src, MaxUploadBytes+1)); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if buf.Len() > MaxUploadBytes {
		return "", ErrTooLarge
	}

	out, err := NormalizeImage(buf.Bytes())
	if err != nil {
		return "", err
	}

	key := BuildObjectKey(folder, fh.Filename, u.now())
	url, err := u.store.Put(ctx, key, out, "image/webp")
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return url, nil
}

type Disabled struct{}

func (Disabled) Upload(context.Context, string, *multipart.FileHeader) (string, error) {
	return "", ErrDisabled
}

// NewFromConfig memilih driver lewat ASSET_DRIVER (oss|s3|none).
func NewFromConfig(ctx context.Context, cfg *configs.AppConfig) (Uploader, error) {
	switch strings.ToLower(cfg.AssetDriver) {
	case "oss":
		store, err := NewOSSStore(cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("[INFO] Asset driver: aliyun oss bucket=%s", cfg.OSSBucket)
		return NewImageUploader(store), nil
	case "s3":
		store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("[INFO] Asset driver: s3 bucket=%s", cfg.S3Bucket)
		return NewImageUploader(store), nil
	case "", "none":
		log.Println("[INFO] Asset driver: none (upload ditolak)")
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown ASSET_DRIVER %q", cfg.AssetDriver)
	}
}

// AsAppError menerjemahkan error upload ke taksonomi HTTP.
func AsAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotAnImage):
		return helper.InvalidInput("Image must be a JPEG, PNG, GIF or WebP file")
	case errors.Is(err, ErrTooLarge):
		return helper.InvalidInput("Image exceeds the 8MB limit")
	default:
		return helper.Upstream("Failed to upload image", err)
	}
}

func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

var defaultImageFields = []string{"image", "file", "photo"}

// GetImageFile: nil kalau request bukan multipart atau tidak ada file.
func GetImageFile(c *fiber.Ctx, fieldNames ...string) *multipart.FileHeader {
	if !IsMultipart(c) {
		return nil
	}
	names := fieldNames
	if len(names) == 0 {
		names = defaultImageFields
	}
	for _, fn := range names {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}
