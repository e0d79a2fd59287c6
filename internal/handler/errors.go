package handler

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/api"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler 取代 echo 預設的錯誤處理：*echo.HTTPError 保留狀態碼與訊息，
// 其他錯誤一律回 500，不外露內部細節。
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
			if code >= http.StatusInternalServerError {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, api.ErrorResponse{Message: msg})
		}
		if err != nil {
			logger.Error("write error response", zap.Error(err))
		}
	}
}
