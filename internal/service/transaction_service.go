package service

import (
	"fmt"
	"time"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxInvoiceSuffix = 100

type QuoteLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

type QuoteRequest struct {
	EmployeeID uuid.UUID          `json:"employee_id" validate:"uuid_required"`
	Items      []QuoteLineRequest `json:"items" validate:"required,min=1,dive"`
}

type QuoteLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Commission  decimal.Decimal `json:"commission"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Quote prices a cart for one employee so the client can submit a consistent sale.
type Quote struct {
	EmployeeID     uuid.UUID       `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Items          []QuoteLine     `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

type TransactionService interface {
	GetSales() ([]model.Sale, error)
	GetSale(id int64) (*model.Sale, error)
	GetSaleByInvoice(number string) (*model.Sale, error)
	GetPurchases() ([]model.PurchaseInvoice, error)
	GetPurchase(id int64) (*model.PurchaseInvoice, error)
	NextSaleInvoice() (string, error)
	NextPurchaseInvoice() (string, error)
	QuoteSale(req *QuoteRequest) (*Quote, error)
}

type transactionService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	now          func() time.Time
}

func NewTransactionService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
) TransactionService {
	return &transactionService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *transactionService) GetSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *transactionService) GetSale(id int64) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if repository.IsNotFound(err) {
		return nil, ErrSaleNotFound
	}
	return sale, err
}

func (s *transactionService) GetSaleByInvoice(number string) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByInvoiceNumber(number)
	if repository.IsNotFound(err) {
		return nil, ErrSaleNotFound
	}
	return sale, err
}

func (s *transactionService) GetPurchases() ([]model.PurchaseInvoice, error) {
	return s.purchaseRepo.FindAll()
}

func (s *transactionService) GetPurchase(id int64) (*model.PurchaseInvoice, error) {
	inv, err := s.purchaseRepo.FindByID(id)
	if repository.IsNotFound(err) {
		return nil, ErrPurchaseNotFound
	}
	return inv, err
}

// NextSaleInvoice suggests INV-YYYYMMDD-NNNN, suffixed -1, -2, ... while taken.
func (s *transactionService) NextSaleInvoice() (string, error) {
	now := s.now()
	base := fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), now.UnixMilli()%10000)
	return freeInvoiceNumber(base, s.saleRepo.InvoiceExists)
}

// NextPurchaseInvoice suggests PUR-YYYYMMDDHHMMSS, suffixed while taken.
func (s *transactionService) NextPurchaseInvoice() (string, error) {
	base := "PUR-" + s.now().Format("20060102150405")
	return freeInvoiceNumber(base, s.purchaseRepo.InvoiceExists)
}

func freeInvoiceNumber(base string, exists func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; i <= maxInvoiceSuffix; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", internalErr("Failed to check invoice number", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", newErr(KindConflict, "No free invoice number for "+base)
}

func (s *transactionService) QuoteSale(req *QuoteRequest) (*Quote, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindByID(req.EmployeeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Items))
	for i, it := range req.Items {
		ids[i] = it.ProductID
	}
	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	quote := &Quote{
		EmployeeID:     employee.ID,
		EmployeeName:   employee.Name,
		CommissionRate: employee.Commission,
		Items:          make([]QuoteLine, 0, len(req.Items)),
		TotalAmount:    decimal.Zero,
	}
	for _, it := range req.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		unit := employee.PriceWithCommission(p.Price)
		line := QuoteLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			BasePrice:   p.Price,
			Commission:  employee.CommissionOn(p.Price),
			UnitPrice:   unit,
			TotalPrice:  model.LineTotal(it.Quantity, unit),
		}
		quote.Items = append(quote.Items, line)
		quote.TotalAmount = quote.TotalAmount.Add(line.TotalPrice)
	}
	return quote, nil
}
