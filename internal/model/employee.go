package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type Employee struct {
	BaseModel
	Name       string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Phone      string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone" validate:"required,max=30"`
	Salary     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"salary" validate:"gte=0"`
	Commission decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission" validate:"gte=0,lte=100"`
}

// CommissionOn returns the employee's share of price, rounded to cents.
func (e *Employee) CommissionOn(price decimal.Decimal) decimal.Decimal {
	return price.Mul(e.Commission).Div(hundred).Round(2)
}

// PriceWithCommission is what a customer pays when this employee serves them.
func (e *Employee) PriceWithCommission(price decimal.Decimal) decimal.Decimal {
	return price.Add(e.CommissionOn(price))
}

// CommissionIncluded extracts the commission share from an amount that was
// priced with PriceWithCommission.
func (e *Employee) CommissionIncluded(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(e.Commission).Div(hundred.Add(e.Commission)).Round(2)
}
