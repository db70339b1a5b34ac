package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseInvoice is a supplier invoice taken into stock records.
type PurchaseInvoice struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	InvoiceNumber string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoice_number"`
	SupplierName  string          `gorm:"type:varchar(255);not null" json:"supplier_name"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedBy     string          `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseInvoiceID" json:"items"`
}

type PurchaseItem struct {
	PurchaseInvoiceID int64           `gorm:"primaryKey;autoIncrement:false" json:"purchase_invoice_id,string"`
	ProductID         uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"product_id"`
	Product           *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT;" json:"-"`
	ProductName       string          `gorm:"type:varchar(255);not null" json:"product_name"`
	LineNo            int             `gorm:"not null" json:"line_no"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt         time.Time       `json:"created_at"`
	LineID            string          `gorm:"-" json:"id"`
}

func (i PurchaseItem) Key() LineKey {
	return LineKey{HeaderID: i.PurchaseInvoiceID, ProductID: i.ProductID}
}

func (i *PurchaseItem) AfterFind(tx *gorm.DB) error {
	i.LineID = i.Key().String()
	return nil
}

func (p PurchaseInvoice) Timestamp() time.Time    { return p.CreatedAt }
func (p PurchaseInvoice) Amount() decimal.Decimal { return p.TotalAmount }

func (p PurchaseInvoice) Lines() []Line {
	lines := make([]Line, len(p.Items))
	for i, it := range p.Items {
		lines[i] = Line{ProductID: it.ProductID, ProductName: it.ProductName, Quantity: it.Quantity, Total: it.TotalPrice}
	}
	return lines
}
