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

type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
	logger             *logger.Logger
}

func NewMaintenanceHandler(maintenanceService services.MaintenanceService, logger *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// Create opens a maintenance task for a vehicle.
// POST /api/v1/maintenance
func (h *MaintenanceHandler) Create(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.MaintenanceCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	task, err := h.maintenanceService.Create(c.Request.Context(), userID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Maintenance task created", task)
}

// Get returns one maintenance task.
// GET /api/v1/maintenance/:id
func (h *MaintenanceHandler) Get(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid task ID")
		return
	}

	task, err := h.maintenanceService.GetByID(c.Request.Context(), taskID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Maintenance task", task)
}

// List returns maintenance tasks, optionally for one vehicle.
// GET /api/v1/maintenance
func (h *MaintenanceHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var (
		tasks []*models.MaintenanceTask
		total int64
		err   error
	)
	if raw := c.Query("vehicle_id"); raw != "" {
		vehicleID, parseErr := primitive.ObjectIDFromHex(raw)
		if parseErr != nil {
			utils.BadRequestResponse(c, "Invalid vehicle ID")
			return
		}
		tasks, total, err = h.maintenanceService.ListByVehicle(c.Request.Context(), vehicleID, params)
	} else {
		tasks, total, err = h.maintenanceService.ListAll(c.Request.Context(), params)
	}
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Maintenance tasks", tasks, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// SetStatus advances a task through OPEN -> IN_PROGRESS -> DONE.
// PATCH /api/v1/maintenance/:id/status
func (h *MaintenanceHandler) SetStatus(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid task ID")
		return
	}

	var request validators.MaintenanceStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	task, err := h.maintenanceService.SetStatus(c.Request.Context(), taskID, models.MaintenanceStatus(request.Status))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Maintenance status updated", task)
}
