package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the delivery lifecycle of an order
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusAccepted  OrderStatus = 1
	OrderStatusPickedUp  OrderStatus = 2
	OrderStatusDelivered OrderStatus = 3
	OrderStatusCancelled OrderStatus = 4
)

func (s OrderStatus) String() string {
	return [...]string{"pending", "accepted", "picked_up", "delivered", "cancelled"}[s]
}

// Terminal reports whether the order can no longer change state
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces the forward-only delivery lifecycle
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return next == s+1
}

// ParseOrderStatus converts an API string into an OrderStatus
func ParseOrderStatus(str string) (OrderStatus, bool) {
	switch str {
	case "pending":
		return OrderStatusPending, true
	case "accepted":
		return OrderStatusAccepted, true
	case "picked_up":
		return OrderStatusPickedUp, true
	case "delivered":
		return OrderStatusDelivered, true
	case "cancelled":
		return OrderStatusCancelled, true
	}
	return 0, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	if parsed, ok := ParseOrderStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
