package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/felixotieno/haraka-api/internal/application/service"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/request"
	"github.com/felixotieno/haraka-api/internal/presentation/http/dto/response"
	"github.com/felixotieno/haraka-api/internal/presentation/http/middleware"
)

// OrderHandler exposes the order lifecycle
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryFee:     req.DeliveryFee,
		Tip:             req.Tip,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{Pagination: pageParams(c)}

	if raw := c.Query("status"); raw != "" {
		status, valid := enum.ParseOrderStatus(raw)
		if !valid {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}
	if id, ok := parseUUIDQuery(c, "restaurant_id"); ok {
		params.RestaurantID = id
	}
	if id, ok := parseUUIDQuery(c, "driver_id"); ok {
		params.DriverID = id
	}
	if id, ok := parseUUIDQuery(c, "customer_id"); ok {
		params.CustomerID = id
	}

	page, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// UpdateStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, _ := enum.ParseOrderStatus(req.Status)

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, &service.UpdateStatusInput{
		Status:   status,
		DriverID: req.DriverID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, &service.UpdateStatusInput{
		Status: enum.OrderStatusCancelled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}
