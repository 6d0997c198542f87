package handlers

import (
	"fleetdesk/internal/services"
	"fleetdesk/internal/utils"
	"fleetdesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PhotoHandler struct {
	photoService services.PhotoService
	logger       *logger.Logger
}

func NewPhotoHandler(photoService services.PhotoService, logger *logger.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		logger:       logger,
	}
}

// Upload stores a trip photo for a booking and returns its storage key.
// POST /api/v1/bookings/:id/photos
func (h *PhotoHandler) Upload(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	defer file.Close()

	response, err := h.photoService.UploadTripPhoto(
		c.Request.Context(),
		bookingID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Photo uploaded", response)
}

// GetURL returns a short-lived download URL for a stored photo.
// GET /api/v1/photos/url?key=...
func (h *PhotoHandler) GetURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "key is required")
		return
	}

	url, err := h.photoService.GetPhotoURL(c.Request.Context(), key)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Photo URL", gin.H{"url": url})
}
