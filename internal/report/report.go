// Package report derives summary views from transactions already loaded in memory.
// Every function is pure: inputs are never modified and results are fresh slices.
package report

import (
	"errors"
	"sort"
	"time"

	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("from date is after to date")

// Record is implemented by model.Sale and model.PurchaseInvoice.
type Record interface {
	Timestamp() time.Time
	Amount() decimal.Decimal
	Lines() []model.Line
}

// DateRange bounds are inclusive; a nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
	Loc  *time.Location
}

// ParseDateRange reads YYYY-MM-DD days in loc. From starts at 00:00:00 and To
// ends at the last nanosecond of its day. Empty strings leave that side open.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	r := DateRange{Loc: loc}
	if from != "" {
		d, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return r, err
		}
		r.From = &d
	}
	if to != "" {
		d, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return r, err
		}
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		r.To = &end
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return r, ErrInvalidRange
	}
	return r, nil
}

func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

func FilterByDateRange[T Record](records []T, r DateRange) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Timestamp()) {
			out = append(out, rec)
		}
	}
	return out
}

type DailyTotal struct {
	Date        string          `json:"date"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       int             `json:"items"`
}

// GroupByDate buckets records by their calendar day in loc, ascending.
func GroupByDate[T Record](records []T, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make(map[string]*DailyTotal)
	for _, rec := range records {
		day := rec.Timestamp().In(loc).Format(dateLayout)
		b, ok := buckets[day]
		if !ok {
			b = &DailyTotal{Date: day, TotalAmount: decimal.Zero}
			buckets[day] = b
		}
		b.Count++
		b.TotalAmount = b.TotalAmount.Add(rec.Amount())
		for _, l := range rec.Lines() {
			b.Items += l.Quantity
		}
	}

	out := make([]DailyTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type ProfitRow struct {
	Date      string          `json:"date"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Salaries  decimal.Decimal `json:"salaries"`
	Profit    decimal.Decimal `json:"profit"`
}

// ComputeProfit merges both series by date. The full salary sum is charged
// against every date, not prorated.
func ComputeProfit(sales, purchases []DailyTotal, salaries decimal.Decimal) []ProfitRow {
	rows := make(map[string]*ProfitRow)
	row := func(date string) *ProfitRow {
		r, ok := rows[date]
		if !ok {
			r = &ProfitRow{Date: date, Sales: decimal.Zero, Purchases: decimal.Zero, Salaries: salaries}
			rows[date] = r
		}
		return r
	}
	for _, d := range sales {
		r := row(d.Date)
		r.Sales = r.Sales.Add(d.TotalAmount)
	}
	for _, d := range purchases {
		r := row(d.Date)
		r.Purchases = r.Purchases.Add(d.TotalAmount)
	}

	out := make([]ProfitRow, 0, len(rows))
	for _, r := range rows {
		r.Profit = r.Sales.Sub(r.Purchases).Sub(r.Salaries)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type ProductRank struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// RankByQuantity sums lines per product and sorts by quantity, descending.
// Ties keep first-encountered order. topN <= 0 returns every product.
func RankByQuantity[T Record](records []T, topN int) []ProductRank {
	index := make(map[uuid.UUID]int)
	out := make([]ProductRank, 0)
	for _, rec := range records {
		for _, l := range rec.Lines() {
			i, ok := index[l.ProductID]
			if !ok {
				i = len(out)
				index[l.ProductID] = i
				out = append(out, ProductRank{ProductID: l.ProductID, TotalAmount: decimal.Zero})
			}
			out[i].ProductName = l.ProductName
			out[i].TotalQuantity += l.Quantity
			out[i].TotalAmount = out[i].TotalAmount.Add(l.Total)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalQuantity > out[j].TotalQuantity })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

type SoldItem struct {
	ProductRank
	RemainingStock int  `json:"remaining_stock"`
	Known          bool `json:"known"`
}

// SoldItems is the sales ranking annotated with the current stock of each product.
func SoldItems(sales []model.Sale, products []model.Product, topN int) []SoldItem {
	stock := make(map[uuid.UUID]int, len(products))
	for _, p := range products {
		stock[p.ID] = p.Stock
	}
	ranked := RankByQuantity(sales, topN)
	out := make([]SoldItem, len(ranked))
	for i, r := range ranked {
		s, ok := stock[r.ProductID]
		out[i] = SoldItem{ProductRank: r, RemainingStock: s, Known: ok}
	}
	return out
}

type EmployeeStats struct {
	EmployeeID       uuid.UUID       `json:"employee_id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Salary           decimal.Decimal `json:"salary"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	SalesCount       int             `json:"sales_count"`
	SalesTotal       decimal.Decimal `json:"sales_total"`
	CommissionEarned decimal.Decimal `json:"commission_earned"`
}

type EmployeeSummary struct {
	Employees     []EmployeeStats `json:"employees"`
	TotalSalaries decimal.Decimal `json:"total_salaries"`
	Count         int             `json:"count"`
}

// TotalSalaries sums the fixed salaries of all employees.
func TotalSalaries(employees []model.Employee) decimal.Decimal {
	total := decimal.Zero
	for _, e := range employees {
		total = total.Add(e.Salary)
	}
	return total
}

// SummarizeEmployees keeps the employee order and attributes each sale to its employee.
func SummarizeEmployees(employees []model.Employee, sales []model.Sale) EmployeeSummary {
	stats := make([]EmployeeStats, len(employees))
	index := make(map[uuid.UUID]int, len(employees))
	for i, e := range employees {
		index[e.ID] = i
		stats[i] = EmployeeStats{
			EmployeeID:     e.ID,
			Name:           e.Name,
			Phone:          e.Phone,
			Salary:         e.Salary,
			CommissionRate: e.Commission,
			SalesTotal:     decimal.Zero,
		}
	}
	for _, s := range sales {
		if s.EmployeeID == nil {
			continue
		}
		i, ok := index[*s.EmployeeID]
		if !ok {
			continue
		}
		stats[i].SalesCount++
		stats[i].SalesTotal = stats[i].SalesTotal.Add(s.TotalAmount)
	}
	for i := range stats {
		e := employees[i]
		stats[i].CommissionEarned = e.CommissionIncluded(stats[i].SalesTotal)
	}
	return EmployeeSummary{
		Employees:     stats,
		TotalSalaries: TotalSalaries(employees),
		Count:         len(employees),
	}
}
