package store

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"art-inventory/pkg/log"
)

// MinioStore keeps artwork images in a MinIO (or any S3-compatible) bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore connects to the object store and makes sure the bucket
// exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Infof("created bucket %s", cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (m *MinioStore) Upload(ctx context.Context, data []byte, filename, mimeType string) (ObjectInfo, error) {
	if int64(len(data)) > MaxObjectSize {
		return ObjectInfo{}, ErrPayloadTooLarge
	}

	key := uuid.NewString() + filepath.Ext(filename)
	_, err := m.client.PutObject(ctx, m.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("upload %s: %w", filename, err)
	}

	url, err := m.URL(ctx, key)
	if err != nil {
		// object is stored; the caller can ask for a URL later
		log.Warnf("presign after upload of %s failed: %v", key, err)
		url = ""
	}
	return ObjectInfo{Key: key, URL: url}, nil
}

// Delete removes the object, best-effort. A failed removal is logged and
// swallowed so the caller's primary operation is never failed by cleanup.
func (m *MinioStore) Delete(ctx context.Context, key string) {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		log.Warnf("delete object %s: %v", key, err)
	}
}

func (m *MinioStore) URL(ctx context.Context, key string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, DownloadURLExpiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
