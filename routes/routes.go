package routes

import (
	"fleetdesk/internal/handlers"
	"fleetdesk/internal/middleware"
	"fleetdesk/pkg/realtime"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires registration, login and profile endpoints.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	me := r.Group("/auth")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.GET("/me", authHandler.Me)
	}
}

// SetupBookingRoutes wires the booking lifecycle endpoints.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, photoHandler *handlers.PhotoHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.ListMine)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
		bookings.POST("/:id/checkout", bookingHandler.Checkout)
		bookings.POST("/:id/checkin", bookingHandler.Checkin)
		bookings.POST("/:id/photos", photoHandler.Upload)
	}

	approvals := r.Group("/bookings")
	approvals.Use(middleware.AuthRequired(jwtSecret), middleware.ApproverRequired())
	{
		approvals.GET("/all", bookingHandler.ListAll)
		approvals.POST("/:id/approve", bookingHandler.Approve)
		approvals.POST("/:id/reject", bookingHandler.Reject)
	}

	photos := r.Group("/photos")
	photos.Use(middleware.AuthRequired(jwtSecret))
	{
		photos.GET("/url", photoHandler.GetURL)
	}
}

// SetupVehicleRoutes wires the fleet registry endpoints. Reads are open to
// every authenticated user; writes are admin only.
func SetupVehicleRoutes(r *gin.RouterGroup, vehicleHandler *handlers.VehicleHandler, jwtSecret string) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(jwtSecret))
	{
		vehicles.GET("", vehicleHandler.List)
		vehicles.GET("/:id", vehicleHandler.Get)
	}

	admin := r.Group("/vehicles")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("", vehicleHandler.Create)
		admin.PUT("/:id", vehicleHandler.Update)
		admin.PATCH("/:id/status", vehicleHandler.SetStatus)
		admin.DELETE("/:id", vehicleHandler.Delete)
	}
}

// SetupMaintenanceRoutes wires the workshop endpoints.
func SetupMaintenanceRoutes(r *gin.RouterGroup, maintenanceHandler *handlers.MaintenanceHandler, jwtSecret string) {
	tasks := r.Group("/maintenance")
	tasks.Use(middleware.AuthRequired(jwtSecret), middleware.MaintenanceRequired())
	{
		tasks.POST("", maintenanceHandler.Create)
		tasks.GET("", maintenanceHandler.List)
		tasks.GET("/:id", maintenanceHandler.Get)
		tasks.PATCH("/:id/status", maintenanceHandler.SetStatus)
	}
}

// SetupReportRoutes wires the reporting endpoints for approvers and admins.
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(jwtSecret), middleware.ApproverRequired())
	{
		reports.GET("/usage", reportHandler.Usage)
	}
}

// SetupRealtimeRoutes exposes the websocket feed of booking events.
func SetupRealtimeRoutes(r *gin.RouterGroup, realtimeHandler *realtime.Handler, jwtSecret string) {
	ws := r.Group("/ws")
	ws.Use(middleware.AuthRequired(jwtSecret))
	{
		ws.GET("", realtimeHandler.HandleWebSocket)
	}
}
