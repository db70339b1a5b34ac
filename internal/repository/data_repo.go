package repository

import (
	"fmt"

	"barber-pos-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DataRepository performs the bulk operations behind export, import and clear.
type DataRepository interface {
	WithTx(tx *gorm.DB) DataRepository
	Load() (*model.Snapshot, error)
	ClearAll() error
	Insert(snapshot *model.Snapshot) error
}

type dataRepo struct {
	db *gorm.DB
}

func NewDataRepo(db *gorm.DB) DataRepository {
	return &dataRepo{db}
}

func (r *dataRepo) WithTx(tx *gorm.DB) DataRepository {
	return &dataRepo{tx}
}

func (r *dataRepo) Load() (*model.Snapshot, error) {
	snap := &model.Snapshot{}
	if err := r.db.Order("name").Find(&snap.Categories).Error; err != nil {
		return nil, err
	}
	if err := r.db.Order("name").Find(&snap.Products).Error; err != nil {
		return nil, err
	}
	if err := r.db.Order("name").Find(&snap.Employees).Error; err != nil {
		return nil, err
	}
	if err := r.db.Preload("Items", orderedSaleItems).Order("created_at").Find(&snap.Sales).Error; err != nil {
		return nil, err
	}
	if err := r.db.Preload("Items", orderedPurchaseItems).Order("created_at").Find(&snap.PurchaseInvoices).Error; err != nil {
		return nil, err
	}
	return snap, nil
}

// clearOrder deletes children before parents so foreign keys never block.
var clearOrder = []interface{}{
	&model.SaleItem{},
	&model.Sale{},
	&model.PurchaseItem{},
	&model.PurchaseInvoice{},
	&model.Product{},
	&model.Category{},
	&model.Employee{},
}

func (r *dataRepo) ClearAll() error {
	all := r.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range clearOrder {
		if err := all.Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

// Insert writes a snapshot preserving ids and timestamps. Parents go first.
func (r *dataRepo) Insert(snap *model.Snapshot) error {
	db := r.db.Omit(clause.Associations).Session(&gorm.Session{})
	if len(snap.Categories) > 0 {
		if err := db.Create(&snap.Categories).Error; err != nil {
			return fmt.Errorf("import categories: %w", err)
		}
	}
	if len(snap.Products) > 0 {
		if err := db.Create(&snap.Products).Error; err != nil {
			return fmt.Errorf("import products: %w", err)
		}
	}
	if len(snap.Employees) > 0 {
		if err := db.Create(&snap.Employees).Error; err != nil {
			return fmt.Errorf("import employees: %w", err)
		}
	}
	for i := range snap.Sales {
		sale := &snap.Sales[i]
		if err := db.Create(sale).Error; err != nil {
			return fmt.Errorf("import sale %s: %w", sale.InvoiceNumber, err)
		}
		for j := range sale.Items {
			sale.Items[j].SaleID = sale.ID
			if err := db.Create(&sale.Items[j]).Error; err != nil {
				return fmt.Errorf("import sale %s item %d: %w", sale.InvoiceNumber, j, err)
			}
		}
	}
	for i := range snap.PurchaseInvoices {
		inv := &snap.PurchaseInvoices[i]
		if err := db.Create(inv).Error; err != nil {
			return fmt.Errorf("import purchase %s: %w", inv.InvoiceNumber, err)
		}
		for j := range inv.Items {
			inv.Items[j].PurchaseInvoiceID = inv.ID
			if err := db.Create(&inv.Items[j]).Error; err != nil {
				return fmt.Errorf("import purchase %s item %d: %w", inv.InvoiceNumber, j, err)
			}
		}
	}
	return nil
}
