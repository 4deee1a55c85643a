package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/felixotieno/haraka-api/internal/application/service"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/request"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/response"
	"github.com/felixotieno/haraka-api/internal/presentation/http/middleware"
)

// RestaurantHandler exposes restaurant and menu operations
type RestaurantHandler struct {
	restaurantService *service.RestaurantService
	maxUploadSize     int64
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurantService *service.RestaurantService, maxUploadSize int64) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		maxUploadSize:     maxUploadSize,
	}
}

// Create handles POST /restaurants
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req request.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), &service.CreateRestaurantInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, restaurant)
}

// Get handles GET /restaurants/:id
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid restaurant id")
		return
	}

	restaurant, err := h.restaurantService.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, restaurant)
}

// List handles GET /restaurants
func (h *RestaurantHandler) List(c *gin.Context) {
	page, err := h.restaurantService.ListRestaurants(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Update handles PUT /restaurants/:id
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid restaurant id")
		return
	}

	var req request.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), id, &service.UpdateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		IsOpen:      req.IsOpen,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, restaurant)
}

// Delete handles DELETE /restaurants/:id
func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid restaurant id")
		return
	}

	if err := h.restaurantService.DeleteRestaurant(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// UploadImage handles POST /restaurants/:id/image
func (h *RestaurantHandler) UploadImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid restaurant id")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		response.BadRequest(c, "Image exceeds the maximum upload size")
		return
	}

	restaurant, err := h.restaurantService.UploadImage(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, restaurant)
}

// AddMenuItem handles POST /restaurants/:id/menu
func (h *RestaurantHandler) AddMenuItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid restaurant id")
		return
	}

	var req request.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.restaurantService.AddMenuItem(c.Request.Context(), id, &service.CreateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// ListMenu handles GET /restaurants/:id/menu
func (h *RestaurantHandler) ListMenu(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid restaurant id")
		return
	}

	restaurant, err := h.restaurantService.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, restaurant.MenuItems)
}

// UpdateMenuItem handles PUT /menu-items/:id
func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid menu item id")
		return
	}

	var req request.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.restaurantService.UpdateMenuItem(c.Request.Context(), id, &service.UpdateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteMenuItem handles DELETE /menu-items/:id
func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid menu item id")
		return
	}

	if err := h.restaurantService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
