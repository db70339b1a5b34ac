package service

import (
	"errors"
	"time"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/report"
	"barber-pos-api/internal/repository"
)

const DefaultReportLimit = 10

// ReportQuery is the common filter of every report endpoint.
type ReportQuery struct {
	From  string
	To    string
	Limit int
}

type ReportService interface {
	SalesByDate(q ReportQuery) ([]report.DailyTotal, error)
	PurchasesByDate(q ReportQuery) ([]report.DailyTotal, error)
	Profit(q ReportQuery) ([]report.ProfitRow, error)
	TopSelling(q ReportQuery) ([]report.ProductRank, error)
	PurchasedItems(q ReportQuery) ([]report.ProductRank, error)
	SoldItems(q ReportQuery) ([]report.SoldItem, error)
	Employees(q ReportQuery) (*report.EmployeeSummary, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	loc          *time.Location
}

func NewReportService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	loc *time.Location,
) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
	}
}

func (s *reportService) dateRange(q ReportQuery) (report.DateRange, error) {
	r, err := report.ParseDateRange(q.From, q.To, s.loc)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			return r, validationErr("From date must not be after to date")
		}
		return r, validationErr("Dates must use the YYYY-MM-DD format")
	}
	return r, nil
}

func limitOf(q ReportQuery) int {
	if q.Limit <= 0 {
		return DefaultReportLimit
	}
	return q.Limit
}

func (s *reportService) sales(q ReportQuery) ([]model.Sale, error) {
	r, err := s.dateRange(q)
	if err != nil {
		return nil, err
	}
	all, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, internalErr("Failed to load sales", err)
	}
	return report.FilterByDateRange(all, r), nil
}

func (s *reportService) purchases(q ReportQuery) ([]model.PurchaseInvoice, error) {
	r, err := s.dateRange(q)
	if err != nil {
		return nil, err
	}
	all, err := s.purchaseRepo.FindAll()
	if err != nil {
		return nil, internalErr("Failed to load purchases", err)
	}
	return report.FilterByDateRange(all, r), nil
}

func (s *reportService) SalesByDate(q ReportQuery) ([]report.DailyTotal, error) {
	sales, err := s.sales(q)
	if err != nil {
		return nil, err
	}
	return report.GroupByDate(sales, s.loc), nil
}

func (s *reportService) PurchasesByDate(q ReportQuery) ([]report.DailyTotal, error) {
	purchases, err := s.purchases(q)
	if err != nil {
		return nil, err
	}
	return report.GroupByDate(purchases, s.loc), nil
}

func (s *reportService) Profit(q ReportQuery) ([]report.ProfitRow, error) {
	sales, err := s.sales(q)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchases(q)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.FindAll()
	if err != nil {
		return nil, internalErr("Failed to load employees", err)
	}
	return report.ComputeProfit(
		report.GroupByDate(sales, s.loc),
		report.GroupByDate(purchases, s.loc),
		report.TotalSalaries(employees),
	), nil
}

func (s *reportService) TopSelling(q ReportQuery) ([]report.ProductRank, error) {
	sales, err := s.sales(q)
	if err != nil {
		return nil, err
	}
	return report.RankByQuantity(sales, limitOf(q)), nil
}

func (s *reportService) PurchasedItems(q ReportQuery) ([]report.ProductRank, error) {
	purchases, err := s.purchases(q)
	if err != nil {
		return nil, err
	}
	return report.RankByQuantity(purchases, limitOf(q)), nil
}

func (s *reportService) SoldItems(q ReportQuery) ([]report.SoldItem, error) {
	sales, err := s.sales(q)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, internalErr("Failed to load products", err)
	}
	return report.SoldItems(sales, products, limitOf(q)), nil
}

func (s *reportService) Employees(q ReportQuery) (*report.EmployeeSummary, error) {
	sales, err := s.sales(q)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.FindAll()
	if err != nil {
		return nil, internalErr("Failed to load employees", err)
	}
	summary := report.SummarizeEmployees(employees, sales)
	return &summary, nil
}
