package middleware

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContextUserKey echo.Context 中存放 *model.User 的 key
const ContextUserKey = "user"

const (
	msgNoToken      = "Unauthorized - No Token Provided"
	msgInvalidToken = "Unauthorized - Invalid Token"
	msgUserNotFound = "Unauthorized - User not found"
)

// TokenVerifier 由 *service.TokenIssuer 實作
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

var getUserByID = store.GetUserByID

// tokenFromRequest 先讀 jwt cookie，沒有時改讀 Authorization: Bearer
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(service.CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Authenticate 解析 token 並載入使用者。
// strict 為 true 時任何失敗回 401；false 時不設使用者直接放行。
func Authenticate(tokens TokenVerifier, db database.DB, strict bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fail := func(msg string) error {
				if strict {
					return echo.NewHTTPError(http.StatusUnauthorized, msg)
				}
				return next(c)
			}

			raw := tokenFromRequest(c)
			if raw == "" {
				return fail(msgNoToken)
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				return fail(msgInvalidToken)
			}
			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if errors.Is(err, store.ErrNotFound) {
				return fail(msgUserNotFound)
			}
			if err != nil {
				if strict {
					return err
				}
				zap.L().Warn("optional auth: load user failed", zap.Int("user_id", claims.UserID), zap.Error(err))
				return next(c)
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAuth 必須登入
func RequireAuth(tokens TokenVerifier, db database.DB) echo.MiddlewareFunc {
	return Authenticate(tokens, db, true)
}

// OptionalAuth 有 token 就載入使用者，沒有也放行
func OptionalAuth(tokens TokenVerifier, db database.DB) echo.MiddlewareFunc {
	return Authenticate(tokens, db, false)
}

// CurrentUser 取出已驗證的使用者，未登入時回傳 nil
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextUserKey).(*model.User)
	return u
}
