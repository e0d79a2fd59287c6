package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// RequireAdmin 需接在 RequireAuth 之後
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentUser(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin only.")
		}
		return next(c)
	}
}

// RequireSelfOrAdmin 允許路徑參數 param 等於自己的 id，或呼叫者為 admin
func RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}
			if u.IsAdmin() {
				return next(c)
			}
			id, err := strconv.Atoi(c.Param(param))
			if err != nil || id != u.ID {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. You can only access your own data.")
			}
			return next(c)
		}
	}
}
