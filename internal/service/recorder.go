package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/internal/ws"
	"barber-pos-api/pkg/idgen"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor is the authenticated user behind a write.
type Actor struct {
	UserID   string
	Username string
}

// EventPublisher receives realtime notifications after successful writes.
type EventPublisher interface {
	Publish(evt ws.Event)
}

type SaleLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gt=0"`
}

type SaleRequest struct {
	InvoiceNumber string            `json:"invoice_number" validate:"required,max=100"`
	EmployeeID    uuid.UUID         `json:"employee_id" validate:"uuid_required"`
	TotalAmount   decimal.Decimal   `json:"total_amount" validate:"gt=0"`
	SellerUser    string            `json:"seller_user" validate:"max=100"`
	Items         []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseLineRequest names its product by id, barcode or name. Unknown
// products are created with the invoice.
type PurchaseLineRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Barcode     string          `json:"barcode" validate:"max=100"`
	ProductName string          `json:"product_name" validate:"max=255"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	SalePrice   decimal.Decimal `json:"sale_price" validate:"gte=0"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gt=0"`
}

type PurchaseRequest struct {
	InvoiceNumber string                `json:"invoice_number" validate:"required,max=100"`
	SupplierName  string                `json:"supplier_name" validate:"required,max=255"`
	TotalAmount   decimal.Decimal       `json:"total_amount" validate:"gt=0"`
	Items         []PurchaseLineRequest `json:"items" validate:"required,min=1,dive"`
}

// TransactionRecorder persists a header and all of its lines in one unit of work.
type TransactionRecorder interface {
	RecordSale(ctx context.Context, req *SaleRequest, actor Actor) (*model.Sale, error)
	RecordPurchase(ctx context.Context, req *PurchaseRequest, actor Actor) (*model.PurchaseInvoice, error)
}

type transactionRecorder struct {
	db           *gorm.DB
	ids          idgen.Generator
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	events       EventPublisher
	log          zerolog.Logger
}

func NewTransactionRecorder(
	db *gorm.DB,
	ids idgen.Generator,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	events EventPublisher,
	log zerolog.Logger,
) TransactionRecorder {
	return &transactionRecorder{
		db:           db,
		ids:          ids,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		events:       events,
		log:          log,
	}
}

// pendingLine is a request line on its way to becoming an item row.
type pendingLine struct {
	req         *PurchaseLineRequest
	productID   uuid.UUID
	productName string
	quantity    int
	unitPrice   decimal.Decimal
}

// mergeLines folds lines sharing a key into the first occurrence. The same
// product at two different unit prices cannot be folded and is rejected.
func mergeLines[K comparable](lines []pendingLine, key func(pendingLine) K) ([]pendingLine, error) {
	index := make(map[K]int, len(lines))
	out := make([]pendingLine, 0, len(lines))
	for _, l := range lines {
		k := key(l)
		if i, ok := index[k]; ok {
			if !out[i].unitPrice.Equal(l.unitPrice) {
				return nil, validationErr("Items repeat a product with different unit prices")
			}
			out[i].quantity += l.quantity
			continue
		}
		index[k] = len(out)
		out = append(out, l)
	}
	return out, nil
}

func byProduct(l pendingLine) uuid.UUID { return l.productID }

func (r *transactionRecorder) RecordSale(ctx context.Context, req *SaleRequest, actor Actor) (*model.Sale, error) {
	// 1. Validate before touching the database
	req.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	if err := validate(req); err != nil {
		return nil, err
	}
	lines := make([]pendingLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = pendingLine{productID: it.ProductID, quantity: it.Quantity, unitPrice: it.UnitPrice}
	}
	lines, err := mergeLines(lines, byProduct)
	if err != nil {
		return nil, err
	}

	seller := strings.TrimSpace(req.SellerUser)
	if seller == "" {
		seller = actor.Username
	}

	// 2. Header id
	sale := &model.Sale{
		ID:            r.ids.NextID(),
		InvoiceNumber: req.InvoiceNumber,
		TotalAmount:   req.TotalAmount,
		EmployeeID:    &req.EmployeeID,
		SellerUser:    seller,
	}

	// 3-6. One unit of work
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employee, err := r.employeeRepo.WithTx(tx).FindByID(req.EmployeeID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrEmployeeNotFound
			}
			return err
		}
		sale.EmployeeName = employee.Name

		sales := r.saleRepo.WithTx(tx)
		if err := sales.CreateHeader(sale); err != nil {
			if repository.IsDuplicate(err) {
				return ErrDuplicateInvoice
			}
			return err
		}

		products := r.productRepo.WithTx(tx)
		sale.Items = make([]model.SaleItem, 0, len(lines))
		for n, l := range lines {
			product, err := products.FindByID(l.productID)
			if err != nil {
				if repository.IsNotFound(err) {
					return ErrProductNotFound
				}
				return err
			}
			item := model.SaleItem{
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				LineNo:      n + 1,
				Quantity:    l.quantity,
				UnitPrice:   l.unitPrice,
				TotalPrice:  model.LineTotal(l.quantity, l.unitPrice),
			}
			if err := sales.CreateItem(&item); err != nil {
				return err
			}
			item.LineID = item.Key().String()
			sale.Items = append(sale.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, r.failure(ctx, err, "sale", req.InvoiceNumber)
	}

	r.checkTotal(ctx, "sale", sale.InvoiceNumber, sale.TotalAmount, sale.Lines())
	r.publish(ws.Event{
		Type:    "sale",
		Action:  "sale_recorded",
		Data:    sale,
		User:    actor.Username,
		Message: fmt.Sprintf("%s recorded sale %s", actor.Username, sale.InvoiceNumber),
	})
	return sale, nil
}

func purchaseKey(l pendingLine) string {
	switch {
	case l.req.ProductID != nil && *l.req.ProductID != uuid.Nil:
		return "id:" + l.req.ProductID.String()
	case strings.TrimSpace(l.req.Barcode) != "":
		return "barcode:" + strings.TrimSpace(l.req.Barcode)
	default:
		return "name:" + strings.ToLower(strings.TrimSpace(l.req.ProductName))
	}
}

func (r *transactionRecorder) RecordPurchase(ctx context.Context, req *PurchaseRequest, actor Actor) (*model.PurchaseInvoice, error) {
	req.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	req.SupplierName = strings.TrimSpace(req.SupplierName)
	if err := validate(req); err != nil {
		return nil, err
	}
	lines := make([]pendingLine, len(req.Items))
	for i := range req.Items {
		it := &req.Items[i]
		hasID := it.ProductID != nil && *it.ProductID != uuid.Nil
		if !hasID && strings.TrimSpace(it.Barcode) == "" && strings.TrimSpace(it.ProductName) == "" {
			return nil, validationErr(fmt.Sprintf("Item %d must reference a product by id, barcode or name", i+1))
		}
		lines[i] = pendingLine{req: it, quantity: it.Quantity, unitPrice: it.UnitPrice}
	}
	lines, err := mergeLines(lines, purchaseKey)
	if err != nil {
		return nil, err
	}

	invoice := &model.PurchaseInvoice{
		ID:            r.ids.NextID(),
		InvoiceNumber: req.InvoiceNumber,
		SupplierName:  req.SupplierName,
		TotalAmount:   req.TotalAmount,
		CreatedBy:     actor.Username,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchases := r.purchaseRepo.WithTx(tx)
		if err := purchases.CreateHeader(invoice); err != nil {
			if repository.IsDuplicate(err) {
				return ErrDuplicateInvoice
			}
			return err
		}

		products := r.productRepo.WithTx(tx)
		for i := range lines {
			product, err := r.resolveProduct(products, lines[i].req, actor)
			if err != nil {
				return err
			}
			lines[i].productID = product.ID
			lines[i].productName = product.Name
		}
		// Different references (id vs barcode) may name the same product.
		resolved, err := mergeLines(lines, byProduct)
		if err != nil {
			return err
		}

		invoice.Items = make([]model.PurchaseItem, 0, len(resolved))
		for n, l := range resolved {
			item := model.PurchaseItem{
				PurchaseInvoiceID: invoice.ID,
				ProductID:         l.productID,
				ProductName:       l.productName,
				LineNo:            n + 1,
				Quantity:          l.quantity,
				UnitPrice:         l.unitPrice,
				TotalPrice:        model.LineTotal(l.quantity, l.unitPrice),
			}
			if err := purchases.CreateItem(&item); err != nil {
				return err
			}
			item.LineID = item.Key().String()
			invoice.Items = append(invoice.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, r.failure(ctx, err, "purchase", req.InvoiceNumber)
	}

	r.checkTotal(ctx, "purchase", invoice.InvoiceNumber, invoice.TotalAmount, invoice.Lines())
	r.publish(ws.Event{
		Type:    "purchase",
		Action:  "purchase_recorded",
		Data:    invoice,
		User:    actor.Username,
		Message: fmt.Sprintf("%s recorded purchase %s from %s", actor.Username, invoice.InvoiceNumber, invoice.SupplierName),
	})
	return invoice, nil
}

// resolveProduct finds the product by id, then barcode, then name, creating it when none match.
func (r *transactionRecorder) resolveProduct(products repository.ProductRepository, line *PurchaseLineRequest, actor Actor) (*model.Product, error) {
	if line.ProductID != nil && *line.ProductID != uuid.Nil {
		p, err := products.FindByID(*line.ProductID)
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return p, err
	}

	barcode := strings.TrimSpace(line.Barcode)
	if barcode != "" {
		p, err := products.FindByBarcode(barcode)
		if err == nil {
			return p, nil
		}
		if !repository.IsNotFound(err) {
			return nil, err
		}
	}

	name := strings.TrimSpace(line.ProductName)
	if name != "" {
		p, err := products.FindByName(name)
		if err == nil {
			return p, nil
		}
		if !repository.IsNotFound(err) {
			return nil, err
		}
	} else {
		return nil, validationErr(fmt.Sprintf("Unknown barcode %q needs a product_name to create the product", barcode))
	}

	price := line.SalePrice
	if !price.IsPositive() {
		price = line.UnitPrice
	}
	product := &model.Product{
		Name:       name,
		Price:      price,
		CategoryID: line.CategoryID,
	}
	if barcode != "" {
		product.Barcode = &barcode
	}
	product.CreatedBy = actor.Username
	product.UpdatedBy = actor.Username
	if err := products.Create(product); err != nil {
		switch {
		case repository.IsDuplicate(err):
			return nil, ErrBarcodeExists
		case repository.IsForeignKey(err):
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return product, nil
}

// failure passes classified errors through and hides everything else behind ErrRecordingFailed.
func (r *transactionRecorder) failure(ctx context.Context, err error, kind, invoice string) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	loggerFrom(ctx, r.log).Error().Err(err).Str("kind", kind).Str("invoice", invoice).Msg("transaction rolled back")
	return internalErr(ErrRecordingFailed.Message, err)
}

// checkTotal warns when the declared total disagrees with the lines. The declared value is kept.
func (r *transactionRecorder) checkTotal(ctx context.Context, kind, invoice string, declared decimal.Decimal, lines []model.Line) {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total)
	}
	if !sum.Equal(declared) {
		loggerFrom(ctx, r.log).Warn().
			Str("kind", kind).
			Str("invoice", invoice).
			Str("declared", declared.StringFixed(2)).
			Str("lines", sum.StringFixed(2)).
			Msg("declared total differs from line items")
	}
}

func (r *transactionRecorder) publish(evt ws.Event) {
	if r.events != nil {
		r.events.Publish(evt)
	}
}
