package handler

import (
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	recorder service.TransactionRecorder
	service  service.TransactionService
}

func NewTransactionHandler(recorder service.TransactionRecorder, s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{recorder: recorder, service: s}
}

// CreateSale records a sale and its items in one unit of work
// POST /api/sales
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	sale, err := h.recorder.RecordSale(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

func (h *TransactionHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetSales()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *TransactionHandler) GetSale(c *fiber.Ctx) error {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return badRequest(c, "Invalid sale ID")
	}
	sale, err := h.service.GetSale(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// GetSaleByInvoice looks a receipt up by its printed number
// GET /api/sales/invoice/:number
func (h *TransactionHandler) GetSaleByInvoice(c *fiber.Ctx) error {
	sale, err := h.service.GetSaleByInvoice(c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// NextSaleInvoice suggests a free invoice number
// GET /api/sales/next-invoice
func (h *TransactionHandler) NextSaleInvoice(c *fiber.Ctx) error {
	number, err := h.service.NextSaleInvoice()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"invoice_number": number})
}

// QuoteSale prices a cart with the employee's commission
// POST /api/sales/quote
func (h *TransactionHandler) QuoteSale(c *fiber.Ctx) error {
	var req service.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	quote, err := h.service.QuoteSale(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// CreatePurchase records a supplier invoice and its items in one unit of work
// POST /api/purchases
func (h *TransactionHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	invoice, err := h.recorder.RecordPurchase(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": invoice})
}

func (h *TransactionHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.GetPurchases()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchases)
}

func (h *TransactionHandler) GetPurchase(c *fiber.Ctx) error {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return badRequest(c, "Invalid purchase ID")
	}
	invoice, err := h.service.GetPurchase(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// NextPurchaseInvoice suggests a free purchase invoice number
// GET /api/purchases/next-invoice
func (h *TransactionHandler) NextPurchaseInvoice(c *fiber.Ctx) error {
	number, err := h.service.NextPurchaseInvoice()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"invoice_number": number})
}
