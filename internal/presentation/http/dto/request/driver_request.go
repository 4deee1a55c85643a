package request

import "github.com/google/uuid"

// CreateDriverRequest represents the create driver payload
type CreateDriverRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	VehicleType string    `json:"vehicle_type" binding:"required"`
	VehicleReg  *string   `json:"vehicle_reg"`
}

// UpdateDriverRequest represents the update driver payload
type UpdateDriverRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	VehicleType *string `json:"vehicle_type"`
	VehicleReg  *string `json:"vehicle_reg"`
	Photo       *string `json:"photo"`
}

// UpdateDriverStatusRequest represents the driver status payload
type UpdateDriverStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=offline available busy"`
}
