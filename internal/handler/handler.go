package handler

import (
	"errors"
	"strconv"

	"barber-pos-api/internal/logger"
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var statusByKind = map[service.ErrorKind]int{
	service.KindValidation: 400,
	service.KindConflict:   409,
	service.KindNotFound:   404,
	service.KindInUse:      400,
	service.KindAuth:       401,
	service.KindInternal:   500,
}

// respondError maps a service error onto {"error", "code"}. Unclassified errors are 500.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = &service.Error{Kind: service.KindInternal, Message: "Internal server error", Err: err}
	}
	status, ok := statusByKind[svcErr.Kind]
	if !ok {
		status = 500
	}
	if status >= 500 {
		logger.FromContext(c.UserContext()).Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": svcErr.Message, "code": string(svcErr.Kind)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{"error": msg, "code": string(service.KindValidation)})
}

// getActor reads the user set by RequireAuth.
func getActor(c *fiber.Ctx) service.Actor {
	actor := service.Actor{Username: "system"}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.UserID = id
	}
	if name, ok := c.Locals("username").(string); ok && name != "" {
		actor.Username = name
	}
	return actor
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func parseInt64Param(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}
