package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"barber-pos-api/internal/logger"
)

func TestLoggerFromPrefersRequestLogger(t *testing.T) {
	reqBuf := &bytes.Buffer{}
	fallbackBuf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(reqBuf).With().Str("request_id", "req-1").Logger())

	loggerFrom(ctx, logger.NewWithWriter(fallbackBuf)).Warn().Msg("scoped")
	if !strings.Contains(reqBuf.String(), `"request_id":"req-1"`) {
		t.Fatalf("expected request logger output, got %q", reqBuf.String())
	}
	if fallbackBuf.Len() != 0 {
		t.Fatalf("fallback should stay silent, got %q", fallbackBuf.String())
	}

	loggerFrom(context.Background(), logger.NewWithWriter(fallbackBuf)).Error().Msg("unscoped")
	if !strings.Contains(fallbackBuf.String(), "unscoped") {
		t.Fatalf("expected fallback output, got %q", fallbackBuf.String())
	}
}
