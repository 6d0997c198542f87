package handlers

import (
	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/services"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
	logger         *logger.Logger
}

func NewVehicleHandler(vehicleService services.VehicleService, logger *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

func vehicleIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Create registers a vehicle in the fleet.
// POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var request validators.VehicleCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle registered", vehicle)
}

// Get returns one vehicle.
// GET /api/v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), vehicleID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle", vehicle)
}

// List returns the fleet, filterable by status, type and department.
// GET /api/v1/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	filter := interfaces.VehicleListFilter{
		Status:      models.VehicleStatus(c.Query("status")),
		VehicleType: models.VehicleType(c.Query("type")),
		Department:  c.Query("department"),
	}

	params := utils.GetPaginationParams(c)
	vehicles, total, err := h.vehicleService.List(c.Request.Context(), filter, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles", vehicles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// Update modifies vehicle registry fields.
// PUT /api/v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	var request validators.VehicleUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), vehicleID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle updated", vehicle)
}

// SetStatus is the admin override for vehicle availability.
// PATCH /api/v1/vehicles/:id/status
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	var request validators.VehicleStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	vehicle, err := h.vehicleService.SetStatus(c.Request.Context(), vehicleID, models.VehicleStatus(request.Status))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle status updated", vehicle)
}

// Delete removes a vehicle from the registry.
// DELETE /api/v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	vehicleID, ok := vehicleIDParam(c)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), vehicleID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle deleted", nil)
}
