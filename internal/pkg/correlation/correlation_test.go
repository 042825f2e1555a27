//go:build unit

package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))

	ctx := WithID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", FromContext(ctx))
}

func TestLogger_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	Logger(WithID(context.Background(), "abc-123"), base).Info("hello")
	assert.Contains(t, buf.String(), "correlation_id=abc-123")

	buf.Reset()
	Logger(context.Background(), base).Info("hello")
	assert.NotContains(t, buf.String(), "correlation_id")
}
