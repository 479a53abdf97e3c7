//go:build unit

package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"account-shop/internal/handler/middleware"
	"account-shop/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestLoggingMiddlewareUsesInjectedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sink := &recordingHandler{}
	logger := slog.New(sink)
	cfg := config.NewTestConfig().Log

	engine := gin.New()
	engine.Use(middleware.LoggingMiddleware(logger, cfg))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, recorder.Code)
	// 渡したロガーに出力されること。勝手に作り直さない
	require.NotEmpty(t, sink.records)
	assert.Equal(t, "Request completed", sink.records[len(sink.records)-1].Message)
}
