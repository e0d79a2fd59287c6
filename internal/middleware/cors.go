package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// CORS 只放行 allow-list；production 直接以 403 拒絕未知來源，其餘環境放行但記錄警告
func CORS(origins []string, production bool, logger *zap.Logger) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	cors := echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			if allowed[origin] || production {
				return allowed[origin], nil
			}
			logger.Warn("allowing non-listed origin outside production", zap.String("origin", origin))
			return true, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := cors(next)
		return func(c echo.Context) error {
			// 沒有 Origin 的請求 (curl、server-to-server) 不受 CORS 限制
			if origin := c.Request().Header.Get(echo.HeaderOrigin); production && origin != "" && !allowed[origin] {
				logger.Warn("rejected non-listed origin", zap.String("origin", origin))
				return echo.NewHTTPError(http.StatusForbidden, "Not allowed by CORS")
			}
			return h(c)
		}
	}
}
