package handler

import (
	"strconv"

	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// reportQuery reads from, to and limit (default 10)
func reportQuery(c *fiber.Ctx) service.ReportQuery {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultReportLimit)))
	if err != nil || limit <= 0 {
		limit = service.DefaultReportLimit
	}
	return service.ReportQuery{From: c.Query("from"), To: c.Query("to"), Limit: limit}
}

// GetSales returns sale totals per day
// GET /api/reports/sales?from=&to=
func (h *ReportHandler) GetSales(c *fiber.Ctx) error {
	data, err := h.service.SalesByDate(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GetPurchases returns purchase totals per day
// GET /api/reports/purchases?from=&to=
func (h *ReportHandler) GetPurchases(c *fiber.Ctx) error {
	data, err := h.service.PurchasesByDate(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GetProfit returns sales minus purchases minus salaries per day
// GET /api/reports/profit?from=&to=
func (h *ReportHandler) GetProfit(c *fiber.Ctx) error {
	data, err := h.service.Profit(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GET /api/reports/top-selling?from=&to=&limit=
func (h *ReportHandler) GetTopSelling(c *fiber.Ctx) error {
	data, err := h.service.TopSelling(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GET /api/reports/purchased-items?from=&to=&limit=
func (h *ReportHandler) GetPurchasedItems(c *fiber.Ctx) error {
	data, err := h.service.PurchasedItems(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GET /api/reports/sold-items?from=&to=&limit=
func (h *ReportHandler) GetSoldItems(c *fiber.Ctx) error {
	data, err := h.service.SoldItems(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// GET /api/reports/employees?from=&to=
func (h *ReportHandler) GetEmployees(c *fiber.Ctx) error {
	data, err := h.service.Employees(reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}
