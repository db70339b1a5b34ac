package model

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKey identifies one line item inside one transaction header.
// A header holds at most one line per product.
type LineKey struct {
	HeaderID  int64
	ProductID uuid.UUID
}

func (k LineKey) String() string {
	return strconv.FormatInt(k.HeaderID, 10) + ":" + k.ProductID.String()
}

// Line is the read-side view of an item shared by sales and purchases.
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Total       decimal.Decimal
}

// LineTotal returns quantity × unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
