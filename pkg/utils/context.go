package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// ContextWithTimeout - контекст запроса с дедлайном. timeout <= 0 - без дедлайна.
func ContextWithTimeout(ctx echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	reqCtx := ctx.Request().Context()
	if timeout <= 0 {
		return context.WithCancel(reqCtx)
	}
	return context.WithTimeout(reqCtx, timeout)
}
