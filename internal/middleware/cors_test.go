package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func corsRequest(e *echo.Echo, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	origins := []string{"https://shop.example", "https://www.shop.example"}

	e := echo.New()
	e.Use(CORS(origins, true, zap.NewNop()))
	e.GET("/ping", ok)

	rec := corsRequest(e, "https://www.shop.example")
	require.Equal(t, "https://www.shop.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	require.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))

	rec = corsRequest(e, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rejected, rejectLogs := observer.New(zapcore.WarnLevel)
	prod := echo.New()
	prod.Use(CORS(origins, true, zap.New(rejected)))
	ran := false
	prod.POST("/logout", func(c echo.Context) error {
		ran = true
		c.SetCookie(&http.Cookie{Name: "jwt", MaxAge: -1})
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	rec = httptest.NewRecorder()
	prod.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"Not allowed by CORS"}`, rec.Body.String())
	require.False(t, ran)
	require.Empty(t, rec.Header().Get("Set-Cookie"))
	require.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	require.Equal(t, 1, rejectLogs.Len())

	core, logs := observer.New(zapcore.WarnLevel)
	dev := echo.New()
	dev.Use(CORS(origins, false, zap.New(core)))
	dev.GET("/ping", ok)

	rec = corsRequest(dev, "http://localhost:4200")
	require.Equal(t, "http://localhost:4200", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	require.Equal(t, 1, logs.Len())
}
