package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the header of one sale. Items are written once, together with it.
type Sale struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	InvoiceNumber string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoice_number"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	EmployeeID    *uuid.UUID      `gorm:"type:varchar(36);index" json:"employee_id"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID;constraint:OnDelete:RESTRICT;" json:"-"`
	EmployeeName  string          `gorm:"type:varchar(255)" json:"employee_name"`
	SellerUser    string          `gorm:"type:varchar(100)" json:"seller_user"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

type SaleItem struct {
	SaleID      int64           `gorm:"primaryKey;autoIncrement:false" json:"sale_id,string"`
	ProductID   uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT;" json:"-"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	LineNo      int             `gorm:"not null" json:"line_no"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
	LineID      string          `gorm:"-" json:"id"`
}

func (i SaleItem) Key() LineKey {
	return LineKey{HeaderID: i.SaleID, ProductID: i.ProductID}
}

func (i *SaleItem) AfterFind(tx *gorm.DB) error {
	i.LineID = i.Key().String()
	return nil
}

func (s Sale) Timestamp() time.Time    { return s.CreatedAt }
func (s Sale) Amount() decimal.Decimal { return s.TotalAmount }

func (s Sale) Lines() []Line {
	lines := make([]Line, len(s.Items))
	for i, it := range s.Items {
		lines[i] = Line{ProductID: it.ProductID, ProductName: it.ProductName, Quantity: it.Quantity, Total: it.TotalPrice}
	}
	return lines
}
