package service

import (
	"context"

	"barber-pos-api/internal/logger"

	"github.com/rs/zerolog"
)

// loggerFrom prefers the request-scoped logger carried by ctx.
func loggerFrom(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(logger.LoggerKey).(zerolog.Logger); ok {
			return &l
		}
	}
	return &fallback
}
