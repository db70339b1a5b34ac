package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestPriceWithCommission(t *testing.T) {
	tests := []struct {
		commission string
		price      string
		want       string
	}{
		{"0", "25.00", "25"},
		{"10", "25.00", "27.5"},
		{"12.5", "19.99", "22.49"},
		{"100", "8", "16"},
	}
	for _, tt := range tests {
		t.Run(tt.commission+"%", func(t *testing.T) {
			e := Employee{Commission: decimal.RequireFromString(tt.commission)}
			got := e.PriceWithCommission(decimal.RequireFromString(tt.price))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineKeyString(t *testing.T) {
	pid := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	k := SaleItem{SaleID: 42, ProductID: pid}.Key()
	if got := k.String(); got != "42:0f8fad5b-d9cb-469f-a165-70867728950e" {
		t.Fatalf("got %q", got)
	}
	if k != (PurchaseItem{PurchaseInvoiceID: 42, ProductID: pid}).Key() {
		t.Fatalf("keys for the same header and product should be equal")
	}
}

func TestSaleLines(t *testing.T) {
	pid := uuid.New()
	s := Sale{Items: []SaleItem{{ProductID: pid, ProductName: "Cut", Quantity: 2, TotalPrice: LineTotal(2, decimal.NewFromInt(15))}}}
	lines := s.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 || !lines[0].Total.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestPatchSet(t *testing.T) {
	p := Patch{}
	name := "Shave"
	var color *string
	Set(p, "name", &name)
	Set(p, "color", color)
	if len(p) != 1 || p["name"] != "Shave" {
		t.Fatalf("unexpected patch: %v", p)
	}
}

func TestCommissionIncludedInvertsPricing(t *testing.T) {
	e := Employee{Commission: decimal.NewFromInt(10)}
	price := decimal.NewFromInt(50)
	charged := e.PriceWithCommission(price)
	if got := e.CommissionIncluded(charged); !got.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("got %s, want 5", got)
	}
}
