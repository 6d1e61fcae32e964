package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"duomonggo_backend/internals/configs"
)

type OSSStore struct {
	bucket     *oss.Bucket
	publicBase string
}

func NewOSSStore(cfg *configs.AppConfig) (*OSSStore, error) {
	if cfg.OSSEndpoint == "" || cfg.OSSAccessKey == "" || cfg.OSSSecretKey == "" || cfg.OSSBucket == "" {
		return nil, fmt.Errorf("ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET wajib diisi")
	}
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}

	base := cfg.OSSPublicBase
	if base == "" {
		end := strings.TrimPrefix(strings.TrimPrefix(cfg.OSSEndpoint, "https://"), "http://")
		base = fmt.Sprintf("https://%s.%s", cfg.OSSBucket, end)
	}
	return &OSSStore{bucket: bucket, publicBase: base}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.bucket.PutObject(key, bytes.NewReader(body), opts...); err != nil {
		return "", err
	}
	return publicURL(s.publicBase, key), nil
}
