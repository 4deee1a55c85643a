package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DriverStatus represents a driver's availability for dispatch
type DriverStatus int

const (
	DriverStatusOffline   DriverStatus = 0
	DriverStatusAvailable DriverStatus = 1
	DriverStatusBusy      DriverStatus = 2
)

func (s DriverStatus) String() string {
	return [...]string{"offline", "available", "busy"}[s]
}

// ParseDriverStatus converts an API string into a DriverStatus
func ParseDriverStatus(str string) (DriverStatus, bool) {
	switch str {
	case "offline":
		return DriverStatusOffline, true
	case "available":
		return DriverStatusAvailable, true
	case "busy":
		return DriverStatusBusy, true
	}
	return 0, false
}

func (s DriverStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DriverStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DriverStatus(i)
		return nil
	}
	if parsed, ok := ParseDriverStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s DriverStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DriverStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DriverStatusOffline
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DriverStatus(v)
	case int:
		*s = DriverStatus(v)
	}
	return nil
}
