package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one priced line of an order or bill. LineTotal is derived and
// must equal Quantity times UnitPrice; the aggregation helpers keep it in sync.
type LineItem struct {
	ID          string          `json:"id"`
	MenuItemID  string          `json:"menu_item_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Category    string          `json:"category"`
}

// Items is a line item list stored as a JSONB column.
type Items []LineItem

func (i Items) Value() (driver.Value, error) {
	if i == nil {
		i = Items{}
	}

	value, err := json.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line items: %w", err)
	}

	return value, nil
}

func (i *Items) Scan(src any) error {
	if src == nil {
		*i = Items{}

		return nil
	}

	var raw []byte

	switch value := src.(type) {
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("unsupported line items column type %T", src)
	}

	if err := json.Unmarshal(raw, i); err != nil {
		return fmt.Errorf("failed to unmarshal line items: %w", err)
	}

	return nil
}
