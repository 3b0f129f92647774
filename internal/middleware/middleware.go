package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ticketchain/internal/logger"

	"github.com/gin-gonic/gin"
)

// Ctx key and helpers for the authenticated caller identity.
// Using unexported type to avoid collisions

type ctxKey string

const callerKey ctxKey = "caller_id"

// CallerHeader carries the authenticated caller identity, set by the
// fronting auth collaborator. The ledger trusts it as given.
const CallerHeader = "X-Caller-Id"

func ContextWithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(callerKey)
	if v == nil {
		return "", false
	}
	caller, ok := v.(string)
	return caller, ok
}

// CORS middleware для обработки CORS запросов
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+CallerHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// CallerIdentity извлекает личность вызывающего из заголовка и кладет её в
// контекст запроса. Запросы без заголовка отклоняются: каждая мутирующая
// операция леджера требует аутентифицированного вызывающего.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetHeader(CallerHeader)
		if caller == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "caller identity required"})
			return
		}

		c.Set("caller_id", caller)

		ctx := ContextWithCaller(c.Request.Context(), caller)
		ctx = logger.ContextWithCaller(ctx, caller)
		ctx = logger.ContextWithRequestID(ctx, logger.NewRequestID())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logger middleware для структурированного логирования запросов
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		caller, exists := c.Get("caller_id")

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if exists {
			logFields = append(logFields, "caller_id", caller)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Debug("Request completed", logFields...)
		}
	}
}

// Recovery middleware для восстановления после паники с детальным логированием
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}
