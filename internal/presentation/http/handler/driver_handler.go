package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/felixotieno/haraka-api/internal/application/service"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/request"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/response"
)

// DriverHandler exposes driver profile operations
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// Create handles POST /drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req request.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), &service.CreateDriverInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Phone:       req.Phone,
		VehicleType: req.VehicleType,
		VehicleReg:  req.VehicleReg,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, driver)
}

// Get handles GET /drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}

	driver, err := h.driverService.GetDriver(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, driver)
}

// List handles GET /drivers
func (h *DriverHandler) List(c *gin.Context) {
	var status *enum.DriverStatus
	if raw := c.Query("status"); raw != "" {
		parsed, valid := enum.ParseDriverStatus(raw)
		if !valid {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &parsed
	}

	page, err := h.driverService.ListDrivers(c.Request.Context(), pageParams(c), c.Query("search"), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Update handles PUT /drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}

	var req request.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), id, &service.UpdateDriverInput{
		Name:        req.Name,
		Phone:       req.Phone,
		VehicleType: req.VehicleType,
		VehicleReg:  req.VehicleReg,
		Photo:       req.Photo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, driver)
}

// UpdateStatus handles PUT /drivers/:id/status
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}

	var req request.UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, _ := enum.ParseDriverStatus(req.Status)

	driver, err := h.driverService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, driver)
}

// Delete handles DELETE /drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver id")
		return
	}

	if err := h.driverService.DeleteDriver(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
