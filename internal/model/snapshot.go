package model

import "time"

// Snapshot is the export/import document. Users are not part of it.
type Snapshot struct {
	Categories       []Category        `json:"categories"`
	Products         []Product         `json:"products"`
	Sales            []Sale            `json:"sales"`
	PurchaseInvoices []PurchaseInvoice `json:"purchaseInvoices"`
	Employees        []Employee        `json:"employees"`
	ExportedAt       time.Time         `json:"exportedAt"`
}
