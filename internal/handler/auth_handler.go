package handler

import (
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(response)
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(userID)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized", "code": string(service.KindAuth)})
	}

	user, err := h.authService.Me(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Setup creates the first admin account
// POST /api/setup
func (h *AuthHandler) Setup(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.Setup(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"message": "Administrator created",
		"data":    user.ToResponse(),
	})
}
