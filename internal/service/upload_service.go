package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxUploadSize caps product image uploads at 5 MiB.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadService stores product images in the external asset store and returns
// a reference URL. File contents are never inspected beyond the size cap.
type UploadService interface {
	UploadImage(ctx context.Context, filename string, size int64, r io.Reader) (string, error)
}

type uploadService struct {
	s3Client *s3.Client
	bucket   string
	baseURL  string
	log      *zap.Logger
}

func NewUploadService(s3Client *s3.Client, bucket, baseURL string, log *zap.Logger) UploadService {
	return &uploadService{
		s3Client: s3Client,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		log:      log,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if size > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: only image files are allowed", ErrValidation)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, MaxUploadSize)
	}

	key := "products/" + uuid.New().String() + ext
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.Error("asset upload failed",
			zap.String("key", key),
			zap.Error(err))
		return "", err
	}

	url := s.baseURL + "/" + key
	s.log.Info("asset uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}
