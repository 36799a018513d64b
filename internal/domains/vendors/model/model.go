package model

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	gModel "lodge/shared/model"
)

const (
	TableName  = "vendors"
	EntityName = "vendor"

	FieldID            = "id"
	FieldName          = "name"
	FieldContactPerson = "contact_person"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldGstin         = "gstin"
	FieldActive        = "active"
)

type Vendor struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	ContactPerson *string `db:"contact_person"`
	Phone         string  `db:"phone"`
	Email         *string `db:"email"`
	Address       *string `db:"address"`
	Gstin         *string `db:"gstin"`
	Active        bool    `db:"active"`
	gModel.Metadata
}

const (
	PurchaseOrderTableName  = "purchase_orders"
	PurchaseOrderEntityName = "purchase order"

	FieldVendorID     = "vendor_id"
	FieldLines        = "lines"
	FieldTotal        = "total"
	FieldStatus       = "status"
	FieldExpectedDate = "expected_date"
	FieldReceivedAt   = "received_at"

	StatusPending   = "Pending"
	StatusReceived  = "Received"
	StatusCancelled = "Cancelled"
)

// PurchaseOrderLine orders a quantity of one stock item from the vendor.
type PurchaseOrderLine struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
}

func (l PurchaseOrderLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.CostPerUnit).Round(2)
}

// PurchaseOrderLines persists as JSONB through the generic repository.
type PurchaseOrderLines []PurchaseOrderLine

func (l PurchaseOrderLines) Value() (driver.Value, error) {
	value, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal purchase order lines: %w", err)
	}

	return value, nil
}

func (l *PurchaseOrderLines) Scan(src any) error {
	if src == nil {
		*l = PurchaseOrderLines{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type for purchase order lines: %T", src)
	}

	if err := json.Unmarshal(raw, l); err != nil {
		return fmt.Errorf("failed to unmarshal purchase order lines: %w", err)
	}

	return nil
}

func (l PurchaseOrderLines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l {
		total = total.Add(line.LineTotal())
	}

	return total.Round(2)
}

// PurchaseOrder moves from Pending to Received exactly once; receiving stocks
// in every line. Cancelled orders are never received.
type PurchaseOrder struct {
	ID           string             `db:"id"`
	VendorID     string             `db:"vendor_id"`
	Lines        PurchaseOrderLines `db:"lines"`
	Total        decimal.Decimal    `db:"total"`
	Status       string             `db:"status"`
	ExpectedDate sql.NullTime       `db:"expected_date"`
	ReceivedAt   sql.NullTime       `db:"received_at"`
	gModel.Metadata
}

func (p *PurchaseOrder) Received() bool {
	return p.Status == StatusReceived
}

func (p *PurchaseOrder) MarkReceived(at time.Time) {
	p.Status = StatusReceived
	p.ReceivedAt = sql.NullTime{Time: at, Valid: true}
}
