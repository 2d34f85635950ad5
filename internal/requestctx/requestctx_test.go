package requestctx

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetaRoundTrip(t *testing.T) {
	ctx := With(context.Background(), Meta{RequestID: "req-1", ClientIP: "10.0.0.1"})
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "10.0.0.1", From(ctx).ClientIP)
	assert.Empty(t, RequestID(context.Background()))
}

func TestLoggerAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	Logger(With(context.Background(), Meta{RequestID: "req-2"})).Info("hello")
	assert.Contains(t, buf.String(), `"requestId":"req-2"`)
	assert.NotContains(t, buf.String(), `"ip"`)
}
