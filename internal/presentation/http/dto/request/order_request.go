package request

import "github.com/google/uuid"

// OrderItemRequest is one requested line item
type OrderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents the create order payload
type CreateOrderRequest struct {
	RestaurantID    uuid.UUID          `json:"restaurant_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" binding:"required"`
	DeliveryFee     float64            `json:"delivery_fee" binding:"gte=0"`
	Tip             float64            `json:"tip" binding:"gte=0"`
}

// UpdateOrderStatusRequest represents a lifecycle transition payload.
// DriverID is required when the new status is accepted.
type UpdateOrderStatusRequest struct {
	Status   string     `json:"status" binding:"required,oneof=pending accepted picked_up delivered cancelled"`
	DriverID *uuid.UUID `json:"driver_id"`
}
