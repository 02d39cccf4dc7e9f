package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaFolder is the fixed logical folder all project media lands under.
const MediaFolder = "portfolio_projects"

// AssetKind tags an upload as an image or video asset.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
)

type MediaStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MediaStore uploads binary media to an S3-compatible object store and
// returns durable public URLs.
type MediaStore struct {
	client *minio.Client
	bucket string
}

func NewMediaStore(cfg MediaStoreConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MediaStore{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey builds the storage key for one upload: a fresh uuid under the
// fixed media folder, keeping the original file extension.
func ObjectKey(filename string) string {
	return fmt.Sprintf("%s/%s%s", MediaFolder, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
}

// Upload streams one media file to the store and returns its durable URL.
// The reader is consumed directly; nothing is staged on local disk.
func (s *MediaStore) Upload(ctx context.Context, kind AssetKind, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = fallbackContentType(kind)
	}

	key := ObjectKey(filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	return s.objectURL(key), nil
}

// Remove deletes a previously uploaded object identified by its URL.
func (s *MediaStore) Remove(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media URL: %w", err)
	}

	key := strings.TrimPrefix(parsed.Path, "/"+s.bucket+"/")
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MediaStore) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}

func fallbackContentType(kind AssetKind) string {
	if kind == AssetVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}
