package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"
	"fleetdesk/pkg/logger"
	"fleetdesk/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PhotoService interface {
	// UploadTripPhoto stores a pre- or post-trip photo and returns its key.
	UploadTripPhoto(ctx context.Context, bookingID primitive.ObjectID, filename string, contentType string, size int64, reader io.Reader) (*storage.UploadResponse, error)
	GetPhotoURL(ctx context.Context, key string) (string, error)
	DeletePhoto(ctx context.Context, key string) error
}

type photoService struct {
	provider storage.StorageProvider
	logger   *logger.Logger
}

func NewPhotoService(provider storage.StorageProvider, logger *logger.Logger) PhotoService {
	return &photoService{
		provider: provider,
		logger:   logger,
	}
}

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func (s *photoService) UploadTripPhoto(ctx context.Context, bookingID primitive.ObjectID, filename string, contentType string, size int64, reader io.Reader) (*storage.UploadResponse, error) {
	if !allowedPhotoTypes[contentType] {
		return nil, models.NewValidationError("file", "unsupported photo content type")
	}
	if size <= 0 || size > utils.MaxPhotoSize {
		return nil, models.NewValidationError("file", "photo exceeds the maximum size")
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("bookings/%s/%s%s", bookingID.Hex(), primitive.NewObjectID().Hex(), ext)

	response, err := s.provider.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
		Metadata: map[string]string{
			"booking_id": bookingID.Hex(),
		},
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithBookingID(bookingID).WithField("key", key).Info("Trip photo uploaded")

	return response, nil
}

func (s *photoService) GetPhotoURL(ctx context.Context, key string) (string, error) {
	return s.provider.GetURL(ctx, key, 15*time.Minute)
}

func (s *photoService) DeletePhoto(ctx context.Context, key string) error {
	return s.provider.Delete(ctx, key)
}
