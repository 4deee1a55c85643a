package request

// CreateRestaurantRequest represents the create restaurant payload
type CreateRestaurantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Address     string  `json:"address" binding:"required"`
	Phone       *string `json:"phone"`
}

// UpdateRestaurantRequest represents the update restaurant payload
type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	IsOpen      *bool   `json:"is_open"`
}

// CreateMenuItemRequest represents the create menu item payload
type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Available   *bool   `json:"available"`
}

// UpdateMenuItemRequest represents the update menu item payload
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Available   *bool    `json:"available"`
}
