package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"storefront/internal/api"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/upload"
	"storefront/internal/worker"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Files 由 *upload.FileStore 實作
type Files interface {
	SaveImage(fh *multipart.FileHeader, dir string) (string, error)
	SaveDocument(fh *multipart.FileHeader, dir string) (string, error)
	Remove(url string) error
}

// Notifier 由 *service.Notifier 實作
type Notifier interface {
	Create(ctx context.Context, in service.NewNotification) (*model.Notification, error)
	BestEffort(ctx context.Context, in service.NewNotification)
}

// ParamID 解析正整數路徑參數
func ParamID(c echo.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Page 讀取 page/limit 查詢參數，回傳 page、limit 與 offset
func Page(c echo.Context) (int, int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

// Fail 回傳統一格式的錯誤訊息
func Fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, api.ErrorResponse{Message: msg})
}

// NotFoundOr store.ErrNotFound 轉為 404，其他錯誤交給 ErrorHandler
func NotFoundOr(c echo.Context, err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return Fail(c, http.StatusNotFound, msg)
	}
	return err
}

// UploadError 將檔案驗證錯誤轉為 400
func UploadError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return Fail(c, http.StatusBadRequest, "File is too large")
	case errors.Is(err, upload.ErrUnsupported):
		return Fail(c, http.StatusBadRequest, "Unsupported file type")
	case errors.Is(err, upload.ErrEmpty):
		return Fail(c, http.StatusBadRequest, "File is empty")
	}
	return err
}

// RemoveLater 在背景刪除不再使用的上傳檔
func RemoveLater(pool worker.Pool, files Files, url string) {
	if url == "" {
		return
	}
	pool.Submit(func() {
		if err := files.Remove(url); err != nil {
			zap.L().Warn("remove upload failed", zap.String("url", url), zap.Error(err))
		}
	})
}
