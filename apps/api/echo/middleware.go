package echoapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestIDMiddleware tags every response with an X-Request-ID, keeping the
// caller's id when one is supplied.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rid := ctx.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			ctx.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(ctx)
		}
	}
}
