package handlers

import (
	"fleetdesk/internal/models"
	"fleetdesk/internal/services"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

func bookingIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

func statusFilter(c *gin.Context) *models.BookingStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	status := models.BookingStatus(raw)
	return &status
}

// Create books a vehicle for a time window.
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.BookingCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if errs := validators.ValidateBookingCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userID, role, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created", booking)
}

// Get returns one booking with its usage record, if any.
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking", booking)
}

// ListMine returns the caller's bookings, paginated.
// GET /api/v1/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListMine(c.Request.Context(), userID, statusFilter(c), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ListAll returns every booking for approver and admin consoles.
// GET /api/v1/bookings/all
func (h *BookingHandler) ListAll(c *gin.Context) {
	_, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListAll(c.Request.Context(), role, statusFilter(c), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// Approve moves a pending booking to APPROVED.
// POST /api/v1/bookings/:id/approve
func (h *BookingHandler) Approve(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Approve(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking approved", booking)
}

// Reject moves a pending booking to REJECTED with a reason.
// POST /api/v1/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var request validators.BookingRejectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	booking, err := h.bookingService.Reject(c.Request.Context(), bookingID, userID, role, request.Reason)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking rejected", booking)
}

// Cancel withdraws a pending or approved booking.
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

// Checkout records vehicle pickup and flips the vehicle to IN_USE.
// POST /api/v1/bookings/:id/checkout
func (h *BookingHandler) Checkout(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var request validators.BookingCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	booking, err := h.bookingService.Checkout(c.Request.Context(), bookingID, userID, role, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle checked out", booking)
}

// Checkin records vehicle return, completes the booking and reconciles the
// vehicle status.
// POST /api/v1/bookings/:id/checkin
func (h *BookingHandler) Checkin(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var request validators.BookingCheckinRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	booking, err := h.bookingService.Checkin(c.Request.Context(), bookingID, userID, role, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle checked in", booking)
}
