package handler

import (
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetEmployees()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}
	employee, err := h.service.GetEmployee(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employee)
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	employee, err := h.service.CreateEmployee(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Employee created", "data": employee})
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}
	var req service.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	employee, err := h.service.UpdateEmployee(id, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee updated", "data": employee})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}
	if err := h.service.DeleteEmployee(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}

// GetPrice returns the commission price of one product for this employee
// GET /api/employees/:id/price?product_id=
func (h *EmployeeHandler) GetPrice(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee ID")
	}
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		return badRequest(c, "product_id query parameter is required")
	}

	price, err := h.service.PriceFor(id, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(price)
}
