package middleware

import (
	"net/http"
	"testing"

	"storefront/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAdmin(t *testing.T) {
	ctx, rec := newContext("", nil)
	ctx.Set(ContextUserKey, &model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, RequireAdmin(ok)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, _ = newContext("", nil)
	ctx.Set(ContextUserKey, &model.User{ID: 2, Role: model.RoleUser})
	requireStatus(t, RequireAdmin(ok)(ctx), http.StatusForbidden, "Access denied. Admin only.")

	ctx, _ = newContext("", nil)
	requireStatus(t, RequireAdmin(ok)(ctx), http.StatusForbidden, "")
}

func TestRequireSelfOrAdmin(t *testing.T) {
	mw := RequireSelfOrAdmin("userId")
	withParam := func(u *model.User, id string) echo.Context {
		ctx, _ := newContext("", nil)
		ctx.SetParamNames("userId")
		ctx.SetParamValues(id)
		if u != nil {
			ctx.Set(ContextUserKey, u)
		}
		return ctx
	}

	require.NoError(t, mw(ok)(withParam(&model.User{ID: 5, Role: model.RoleUser}, "5")))
	require.NoError(t, mw(ok)(withParam(&model.User{ID: 1, Role: model.RoleAdmin}, "5")))
	requireStatus(t, mw(ok)(withParam(&model.User{ID: 6, Role: model.RoleUser}, "5")), http.StatusForbidden, "")
	requireStatus(t, mw(ok)(withParam(&model.User{ID: 6, Role: model.RoleUser}, "abc")), http.StatusForbidden, "")
	requireStatus(t, mw(ok)(withParam(nil, "5")), http.StatusUnauthorized, "")
}
