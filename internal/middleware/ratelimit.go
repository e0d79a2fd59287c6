package middleware

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/cache"
	"storefront/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RateLimit 以 Redis INCR/EXPIRE 對每個 client IP 做固定視窗限流。
// Redis 出錯時放行 (fail open)。
func RateLimit(c cache.Cache, name string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			reqCtx := ctx.Request().Context()
			key := fmt.Sprintf("rl:%s:%s", name, ctx.RealIP())

			count, err := c.Incr(reqCtx, key).Result()
			if err != nil {
				zap.L().Warn("rate limit store unavailable", zap.String("name", name), zap.Error(err))
				return next(ctx)
			}
			if count == 1 {
				if err := c.Expire(reqCtx, key, window).Err(); err != nil {
					zap.L().Warn("rate limit expire failed", zap.String("key", key), zap.Error(err))
				}
			}
			if count > int64(limit) {
				metrics.RateLimitRejections.WithLabelValues(name).Inc()
				ctx.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later")
			}
			return next(ctx)
		}
	}
}
