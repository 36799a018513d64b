package billing

import (
	"lodge/shared/failure"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategoryRoom         = "Room"
	CategoryFoodBeverage = "Food & Beverage"
	CategoryService      = "Service"
	CategoryOther        = "Other"
)

const (
	moneyPlaces = 2
)

// DefaultTaxRate is the flat GST rate applied to every order and bill.
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// Totals holds the derived monetary figures of an order or bill. All figures
// are rounded to two decimal places.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	NetTotal  decimal.Decimal `json:"net_total"`
}

// ComputeTotals derives subtotal, tax and net total from a list of line items.
// It is pure: callers must re-invoke it after every item mutation, totals are
// never updated implicitly. An empty item list yields all-zero subtotal and tax.
func ComputeTotals(items Items, discount, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero

	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	subtotal = subtotal.Round(moneyPlaces)
	taxAmount := subtotal.Mul(taxRate).Round(moneyPlaces)
	netTotal := subtotal.Add(taxAmount).Sub(discount).Round(moneyPlaces)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		NetTotal:  netTotal,
	}
}

// ValidateDiscount rejects a discount that meets or exceeds the payable amount
// (subtotal plus tax). A zero discount is always acceptable.
func ValidateDiscount(items Items, discount, taxRate decimal.Decimal) error {
	if discount.IsNegative() {
		return failure.BadRequestFromString("discount cannot be negative")
	}

	if discount.IsZero() {
		return nil
	}

	totals := ComputeTotals(items, decimal.Zero, taxRate)
	payable := totals.Subtotal.Add(totals.TaxAmount)

	if discount.GreaterThanOrEqual(payable) {
		return failure.BadRequestFromString("discount exceeds payable amount")
	}

	return nil
}

// AddItem merges one unit of a sellable item into the working item list. If a
// line for the same menu item already exists its quantity is incremented,
// otherwise a new line with quantity 1 is appended. The input slice is not
// mutated; callers must recompute totals on the result.
func AddItem(items Items, menuItemID, description string, unitPrice decimal.Decimal, category string) Items {
	result := make(Items, len(items))
	copy(result, items)

	for idx, item := range result {
		if item.MenuItemID != "" && item.MenuItemID == menuItemID {
			result[idx].Quantity++
			result[idx].LineTotal = result[idx].UnitPrice.Mul(decimal.NewFromInt(int64(result[idx].Quantity))).Round(moneyPlaces)

			return result
		}
	}

	return append(result, LineItem{
		ID:          uuid.NewString(),
		MenuItemID:  menuItemID,
		Description: description,
		Quantity:    1,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Round(moneyPlaces),
		Category:    category,
	})
}

// SetQuantity updates a line's quantity and line total. A quantity of zero or
// less removes the line.
func SetQuantity(items Items, itemID string, quantity int) Items {
	if quantity <= 0 {
		return RemoveItem(items, itemID)
	}

	result := make(Items, len(items))
	copy(result, items)

	for idx, item := range result {
		if item.ID == itemID {
			result[idx].Quantity = quantity
			result[idx].LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyPlaces)

			break
		}
	}

	return result
}

// AddAdHocItem appends a freeform charge not backed by any sellable unit, such
// as a mini-bar or service fee line.
func AddAdHocItem(items Items, description string, quantity int, unitPrice decimal.Decimal, category string) (Items, error) {
	if description == "" {
		return items, failure.BadRequestFromString("item description is required")
	}

	if quantity < 1 {
		return items, failure.BadRequestFromString("item quantity must be at least 1")
	}

	if unitPrice.IsNegative() {
		return items, failure.BadRequestFromString("item unit price cannot be negative")
	}

	result := make(Items, len(items))
	copy(result, items)

	return append(result, LineItem{
		ID:          uuid.NewString(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyPlaces),
		Category:    category,
	}), nil
}

// RemoveItem removes a line by id. Unknown ids leave the list unchanged.
func RemoveItem(items Items, itemID string) Items {
	result := make(Items, 0, len(items))

	for _, item := range items {
		if item.ID != itemID {
			result = append(result, item)
		}
	}

	return result
}

// RoomNights counts chargeable nights between check-in and check-out, rounding
// any partial day up. A stay shorter than a day still charges one night.
func RoomNights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	if hours <= 0 {
		return 1
	}

	return int(math.Ceil(hours / 24))
}
