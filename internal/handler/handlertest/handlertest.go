// Package handlertest 提供 handler 測試共用的假實作與 request 建構工具
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"storefront/internal/api"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

// FakeFiles 記錄存檔與刪除；Err 非 nil 時 Save* 回傳該錯誤
type FakeFiles struct {
	mu      sync.Mutex
	Err     error
	Saved   []string
	Removed []string
}

func (f *FakeFiles) save(dir string, fh *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	url := "/uploads/" + dir + "/" + fh.Filename
	f.Saved = append(f.Saved, url)
	return url, nil
}

func (f *FakeFiles) SaveImage(fh *multipart.FileHeader, dir string) (string, error) {
	return f.save(dir, fh)
}

func (f *FakeFiles) SaveDocument(fh *multipart.FileHeader, dir string) (string, error) {
	return f.save(dir, fh)
}

func (f *FakeFiles) Remove(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Removed = append(f.Removed, url)
	return nil
}

// FakeNotifier 記錄收到的通知；CreateErr 用於模擬 fan-out 失敗
type FakeNotifier struct {
	mu        sync.Mutex
	CreateErr error
	Sent      []service.NewNotification
}

func (f *FakeNotifier) Create(ctx context.Context, in service.NewNotification) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Sent = append(f.Sent, in)
	return &model.Notification{ID: len(f.Sent), Type: in.Type, Title: in.Title, Message: in.Message,
		RecipientRole: in.RecipientRole, Priority: in.Priority, IsActive: true}, nil
}

// BestEffort 與正式實作相同：失敗時吞掉錯誤
func (f *FakeNotifier) BestEffort(ctx context.Context, in service.NewNotification) {
	_, _ = f.Create(ctx, in)
}

// NewEcho 回傳掛好正式 validator 的 echo
func NewEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

// JSON 建立 JSON body 的 request context
func JSON(e *echo.Echo, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	switch b := body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// File multipart 檔案欄位
type File struct {
	Field   string
	Name    string
	Content []byte
}

// Multipart 建立 multipart/form-data request context
func Multipart(e *echo.Echo, method, target string, fields map[string]string, files ...File) (echo.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		part, _ := w.CreateFormFile(f.Field, f.Name)
		_, _ = part.Write(f.Content)
	}
	_ = w.Close()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// WithParams 設定路徑參數
func WithParams(c echo.Context, kv ...string) echo.Context {
	var names, values []string
	for i := 0; i+1 < len(kv); i += 2 {
		names = append(names, kv[i])
		values = append(values, kv[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

// AsUser 模擬已通過 RequireAuth 的請求
func AsUser(c echo.Context, u *model.User) echo.Context {
	c.Set(middleware.ContextUserKey, u)
	return c
}

// Admin 與 Member 為測試常用的使用者
func Admin() *model.User {
	return &model.User{ID: 1, FullName: "Ada Admin", Email: "admin@example.com", Role: model.RoleAdmin}
}

func Member() *model.User {
	return &model.User{ID: 2, FullName: "Mia Member", Email: "mia@example.com", Role: model.RoleUser}
}

// Message 解出 {"message": ...}
func Message(rec *httptest.ResponseRecorder) string {
	var out api.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return out.Message
}

// StatusOf 從回傳的 error 取得狀態碼，供檢查 ErrorHandler 會轉成什麼
func StatusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	if err != nil {
		return http.StatusInternalServerError
	}
	return 0
}
