package handler

import (
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser handles user creation
// POST /api/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.CreateUser(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user.ToResponse(),
	})
}

// GetUsers returns all users
// GET /api/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a single user by ID
// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles partial user updates
// PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	user, err := h.userService.UpdateUser(userID, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    user.ToResponse(),
	})
}

// DeleteUser handles user deletion
// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	if actor := getActor(c); actor.UserID == userID.String() {
		return badRequest(c, "Cannot delete your own account")
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
