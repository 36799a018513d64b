package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lodge/shared/billing"
)

func money(value string) decimal.Decimal {
	d, _ := decimal.NewFromString(value)

	return d
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        billing.Items
		discount     decimal.Decimal
		wantSubtotal string
		wantTax      string
		wantNet      string
	}{
		{
			name:         "empty item list yields zero totals",
			items:        billing.Items{},
			discount:     decimal.Zero,
			wantSubtotal: "0",
			wantTax:      "0",
			wantNet:      "0",
		},
		{
			name: "five room nights plus dinner with discount",
			items: billing.Items{
				{ID: "li-1", Description: "Room 101 (2024-07-20 to 2024-07-25)", Quantity: 5, UnitPrice: money("1500"), LineTotal: money("7500"), Category: billing.CategoryRoom},
				{ID: "li-2", Description: "Dinner", Quantity: 1, UnitPrice: money("1200"), LineTotal: money("1200"), Category: billing.CategoryFoodBeverage},
			},
			discount:     money("100"),
			wantSubtotal: "8700",
			wantTax:      "1566",
			wantNet:      "10166",
		},
		{
			name: "fractional prices round to two places",
			items: billing.Items{
				{ID: "li-1", Description: "Draft Beer", Quantity: 3, UnitPrice: money("110.33"), Category: billing.CategoryFoodBeverage},
			},
			discount:     decimal.Zero,
			wantSubtotal: "330.99",
			wantTax:      "59.58",
			wantNet:      "390.57",
		},
		{
			name: "discount applies after tax",
			items: billing.Items{
				{ID: "li-1", Description: "Whiskey Peg", Quantity: 2, UnitPrice: money("250"), Category: billing.CategoryFoodBeverage},
			},
			discount:     money("50"),
			wantSubtotal: "500",
			wantTax:      "90",
			wantNet:      "540",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := billing.ComputeTotals(tt.items, tt.discount, billing.DefaultTaxRate)

			assert.True(t, totals.Subtotal.Equal(money(tt.wantSubtotal)), "subtotal: got %s", totals.Subtotal)
			assert.True(t, totals.TaxAmount.Equal(money(tt.wantTax)), "tax: got %s", totals.TaxAmount)
			assert.True(t, totals.NetTotal.Equal(money(tt.wantNet)), "net: got %s", totals.NetTotal)
		})
	}
}

func TestValidateDiscount(t *testing.T) {
	items := billing.Items{
		{ID: "li-1", Description: "Whiskey Peg", Quantity: 2, UnitPrice: money("250"), Category: billing.CategoryFoodBeverage},
	}

	tests := []struct {
		name     string
		items    billing.Items
		discount decimal.Decimal
		wantErr  string
	}{
		{
			name:     "zero discount always valid",
			items:    billing.Items{},
			discount: decimal.Zero,
		},
		{
			name:     "discount below payable amount",
			items:    items,
			discount: money("589.99"),
		},
		{
			name:     "discount equal to payable amount rejected",
			items:    items,
			discount: money("590"),
			wantErr:  "discount exceeds payable amount",
		},
		{
			name:     "discount above payable amount rejected",
			items:    items,
			discount: money("600"),
			wantErr:  "discount exceeds payable amount",
		},
		{
			name:     "negative discount rejected",
			items:    items,
			discount: money("-1"),
			wantErr:  "discount cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := billing.ValidateDiscount(tt.items, tt.discount, billing.DefaultTaxRate)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestAddItem(t *testing.T) {
	items := billing.AddItem(nil, "menu-1", "Whiskey Peg", money("250"), billing.CategoryFoodBeverage)
	items = billing.AddItem(items, "menu-1", "Whiskey Peg", money("250"), billing.CategoryFoodBeverage)

	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].LineTotal.Equal(money("500")), "line total: got %s", items[0].LineTotal)

	items = billing.AddItem(items, "menu-2", "Draft Beer", money("180"), billing.CategoryFoodBeverage)

	assert.Len(t, items, 2)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestAddItemDoesNotMutateInput(t *testing.T) {
	original := billing.AddItem(nil, "menu-1", "Whiskey Peg", money("250"), billing.CategoryFoodBeverage)
	_ = billing.AddItem(original, "menu-1", "Whiskey Peg", money("250"), billing.CategoryFoodBeverage)

	assert.Equal(t, 1, original[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	items := billing.AddItem(nil, "menu-1", "Whiskey Peg", money("250"), billing.CategoryFoodBeverage)
	itemID := items[0].ID

	items = billing.SetQuantity(items, itemID, 4)

	assert.Equal(t, 4, items[0].Quantity)
	assert.True(t, items[0].LineTotal.Equal(money("1000")), "line total: got %s", items[0].LineTotal)

	items = billing.SetQuantity(items, itemID, 0)

	assert.Empty(t, items)
}

func TestAddAdHocItem(t *testing.T) {
	tests := []struct {
		name        string
		description string
		quantity    int
		unitPrice   decimal.Decimal
		wantErr     bool
	}{
		{
			name:        "valid ad hoc charge",
			description: "Mini Bar",
			quantity:    1,
			unitPrice:   money("350"),
		},
		{
			name:        "empty description rejected",
			description: "",
			quantity:    1,
			unitPrice:   money("350"),
			wantErr:     true,
		},
		{
			name:        "zero quantity rejected",
			description: "Mini Bar",
			quantity:    0,
			unitPrice:   money("350"),
			wantErr:     true,
		},
		{
			name:        "negative price rejected",
			description: "Mini Bar",
			quantity:    1,
			unitPrice:   money("-1"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := billing.AddAdHocItem(nil, tt.description, tt.quantity, tt.unitPrice, billing.CategoryService)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, items)
			} else {
				assert.NoError(t, err)
				assert.Len(t, items, 1)
				assert.Empty(t, items[0].MenuItemID)
			}
		})
	}
}

func TestRemoveItem(t *testing.T) {
	items := billing.AddItem(nil, "menu-1", "Whiskey Peg", money("250"), billing.CategoryFoodBeverage)
	items = billing.AddItem(items, "menu-2", "Draft Beer", money("180"), billing.CategoryFoodBeverage)

	items = billing.RemoveItem(items, items[0].ID)

	assert.Len(t, items, 1)
	assert.Equal(t, "menu-2", items[0].MenuItemID)

	items = billing.RemoveItem(items, "unknown")

	assert.Len(t, items, 1)
}

func TestRoomNights(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		assert.NoError(t, err)

		return parsed
	}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "five full nights",
			checkIn:  day("2024-07-20"),
			checkOut: day("2024-07-25"),
			want:     5,
		},
		{
			name:     "partial day rounds up",
			checkIn:  day("2024-07-20"),
			checkOut: day("2024-07-20").Add(30 * time.Hour),
			want:     2,
		},
		{
			name:     "same day stay charges one night",
			checkIn:  day("2024-07-20"),
			checkOut: day("2024-07-20"),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.RoomNights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestItemsScanValue(t *testing.T) {
	items := billing.Items{
		{ID: "li-1", MenuItemID: "menu-1", Description: "Whiskey Peg", Quantity: 2, UnitPrice: money("250"), LineTotal: money("500"), Category: billing.CategoryFoodBeverage},
	}

	value, err := items.Value()
	assert.NoError(t, err)

	var scanned billing.Items
	assert.NoError(t, scanned.Scan(value))
	assert.Len(t, scanned, 1)
	assert.Equal(t, "menu-1", scanned[0].MenuItemID)
	assert.True(t, scanned[0].LineTotal.Equal(money("500")))

	var fromNil billing.Items
	assert.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)
}
