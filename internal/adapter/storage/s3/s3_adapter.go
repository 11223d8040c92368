package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const objectPrefix = "listings/"

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3Storage stores listing images in a MinIO (S3 compatible) bucket.
type S3Storage struct {
	client  objectPutter
	bucket  string
	baseURL string
	logger  *logger.Logger
}

var _ domain.ImageStorage = (*S3Storage)(nil)

// NewS3Storage connects to MinIO and makes sure the bucket exists.
func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing MinIO storage", zap.String("endpoint", endpoint), zap.String("bucket", bucketName), zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", bucketName, err)
		}
		log.Info("Bucket created", zap.String("bucket", bucketName))
	}

	return newS3Storage(client, bucketName, client.EndpointURL().String(), log), nil
}

func newS3Storage(client objectPutter, bucket, baseURL string, log *logger.Logger) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.Named("S3Storage"),
	}
}

// objectKey keeps only the lowercased extension of the client's file name.
func objectKey(originalFileName string) string {
	return objectPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(originalFileName))
}

// Upload stores data and returns its public URL: <endpoint>/<bucket>/<key>.
func (s *S3Storage) Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, error) {
	key := objectKey(originalFileName)

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Info("Image uploaded", zap.String("key", info.Key), zap.String("etag", info.ETag), zap.Int64("size", info.Size))

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}
