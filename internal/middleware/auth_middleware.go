package middleware

import (
	"strings"

	"barber-pos-api/internal/repository"
	"barber-pos-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(401).JSON(fiber.Map{"error": msg, "code": "unauthorized"})
}

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		// The account may have been deleted or deactivated since the token was issued
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return unauthorized(c, "User not found")
		}
		if !user.IsActive {
			return unauthorized(c, "User account is inactive")
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("username", user.Username)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireRole lets the request through when the authenticated user has one of roles
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found", "code": "forbidden"})
		}

		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(roles, ", ") + " roles",
			"code":  "forbidden",
		})
	}
}
