package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EntryType tags the economic meaning of a ledger entry
type EntryType int

const (
	EntryTypeEarning    EntryType = 0
	EntryTypeFee        EntryType = 1
	EntryTypeSettlement EntryType = 2
	EntryTypeDebt       EntryType = 3
)

func (t EntryType) String() string {
	if !t.IsValid() {
		return "unknown"
	}
	return [...]string{"earning", "fee", "settlement", "debt"}[t]
}

// IsValid reports whether the value is a known entry type
func (t EntryType) IsValid() bool {
	return t >= EntryTypeEarning && t <= EntryTypeDebt
}

// Payable reports whether entries of this type count toward a driver's
// unsettled balance. Settlement entries are historical markers and never do.
func (t EntryType) Payable() bool {
	return t == EntryTypeEarning || t == EntryTypeFee || t == EntryTypeDebt
}

// ParseEntryType converts an API string into an EntryType
func ParseEntryType(s string) (EntryType, bool) {
	switch s {
	case "earning":
		return EntryTypeEarning, true
	case "fee":
		return EntryTypeFee, true
	case "settlement":
		return EntryTypeSettlement, true
	case "debt":
		return EntryTypeDebt, true
	}
	return 0, false
}

func (t EntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = EntryType(i)
		return nil
	}
	if parsed, ok := ParseEntryType(str); ok {
		*t = parsed
	}
	return nil
}

func (t EntryType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *EntryType) Scan(value interface{}) error {
	if value == nil {
		*t = EntryTypeEarning
		return nil
	}
	var parsed EntryType
	switch v := value.(type) {
	case int64:
		parsed = EntryType(v)
	case int:
		parsed = EntryType(v)
	default:
		return fmt.Errorf("cannot scan %T into EntryType", value)
	}
	if !parsed.IsValid() {
		return fmt.Errorf("invalid entry type value %d", parsed)
	}
	*t = parsed
	return nil
}
