package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/config"
)

const maxPhotoBytes = 10 << 20 // 10 MB

var (
	// ErrPhotoTooLarge is returned when an upload exceeds the size limit.
	ErrPhotoTooLarge = errors.New("photo exceeds maximum size")
	// ErrUnsupportedPhotoType is returned for content types other than
	// JPEG, PNG and WebP.
	ErrUnsupportedPhotoType = errors.New("unsupported photo content type")
)

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoService stores meal photos in S3.
type PhotoService struct {
	s3Config *config.S3Config
}

// NewPhotoService creates a new PhotoService instance
func NewPhotoService(s3Config *config.S3Config) *PhotoService {
	return &PhotoService{s3Config: s3Config}
}

// UploadMealPhoto validates and uploads one meal photo, returning its
// public URL. The photo is context for later review; losing it never
// blocks logging the meal.
func (s *PhotoService) UploadMealPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	if len(data) > maxPhotoBytes {
		return "", ErrPhotoTooLarge
	}

	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPhotoType, contentType)
	}

	key := fmt.Sprintf("meal-photos/%s/%s.%s", userID, uuid.New(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[Photo] uploaded meal photo %s", key)

	return publicURL, nil
}

// PresignPhotoURL generates a temporary signed URL for a stored photo key.
func (s *PhotoService) PresignPhotoURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, key, expiration)
}
