// File: internal/handler/auth/auth.go
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword         = service.HashPassword
	authenticateUser     = service.AuthenticateUser
	getUserByEmail       = store.GetUserByEmail
	createUser           = store.CreateUser
	updateUserProfilePic = store.UpdateUserProfilePic
)

// Tokens 由 *service.TokenIssuer 實作
type Tokens interface {
	Issue(userID int) (string, error)
	Cookie(token, origin string) *http.Cookie
	ClearedCookie(origin string) *http.Cookie
}

func origin(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderOrigin)
}

// issueSession 簽發 token 並寫入 jwt cookie
func issueSession(c echo.Context, tokens Tokens, u *model.User) (string, error) {
	token, err := tokens.Issue(u.ID)
	if err != nil {
		return "", err
	}
	c.SetCookie(tokens.Cookie(token, origin(c)))
	return token, nil
}

// SignupHandler 註冊新帳號並直接登入
// @Summary     Sign up
// @Description 建立一般使用者帳號，成功後設定 jwt cookie 並回傳 token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.SignupRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/signup [post]
func SignupHandler(db database.DB, tokens Tokens, notifier handler.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}
		if len(req.Password) < service.MinPasswordLength {
			return handler.Fail(c, http.StatusBadRequest,
				fmt.Sprintf("Password must be at least %d characters", service.MinPasswordLength))
		}

		ctx := c.Request().Context()
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := getUserByEmail(ctx, db, req.Email); err == nil {
			return handler.Fail(c, http.StatusBadRequest, "Email already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		user, err := createUser(ctx, db, &model.User{
			FullName:     strings.TrimSpace(req.FullName),
			Email:        req.Email,
			PasswordHash: hash,
			Role:         model.RoleUser,
		})
		if errors.Is(err, store.ErrConflict) {
			return handler.Fail(c, http.StatusBadRequest, "Email already exists")
		}
		if err != nil {
			return err
		}

		token, err := issueSession(c, tokens, user)
		if err != nil {
			return err
		}

		notifier.BestEffort(ctx, service.NewNotification{
			Type:     model.NotificationUser,
			Title:    "New user registered",
			Message:  fmt.Sprintf("%s (%s) created an account", user.FullName, user.Email),
			Data:     map[string]any{"userId": user.ID},
			Priority: model.PriorityLow,
		})

		return c.JSON(http.StatusCreated, api.AuthResponse{User: api.NewUserResponse(user), Token: token})
	}
}

// LoginHandler 使用 Email/Password 驗證並設定 jwt cookie
// @Summary     Log in
// @Description email 不存在與密碼錯誤回傳相同訊息
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, tokens Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}

		user, err := authenticateUser(c.Request().Context(), db, strings.TrimSpace(req.Email), req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return handler.Fail(c, http.StatusBadRequest, "Wrong credentials")
		}
		if err != nil {
			return err
		}

		token, err := issueSession(c, tokens, user)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.AuthResponse{User: api.NewUserResponse(user), Token: token})
	}
}

// LogoutHandler 清除 jwt cookie；token 本身無狀態，不做伺服器端撤銷
// @Summary     Log out
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Router      /auth/logout [post]
func LogoutHandler(tokens Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(tokens.ClearedCookie(origin(c)))
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
	}
}

// CheckAuthHandler 回傳目前登入的使用者
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/check [get]
func CheckAuthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.NewUserResponse(middleware.CurrentUser(c)))
	}
}

// UpdateProfileHandler 上傳新的大頭照，舊檔由背景 worker 刪除
// @Summary     Update profile picture
// @Tags        auth
// @Accept      multipart/form-data
// @Produce     json
// @Param       profilePic formData file true "圖片 (jpeg/png/gif/webp, ≤10MB)"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/update-profile [put]
func UpdateProfileHandler(db database.DB, files handler.Files, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		current := middleware.CurrentUser(c)
		fh, err := c.FormFile("profilePic")
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, "Profile picture is required")
		}
		url, err := files.SaveImage(fh, "profiles")
		if err != nil {
			return handler.UploadError(c, err)
		}

		user, err := updateUserProfilePic(c.Request().Context(), db, current.ID, url)
		if err != nil {
			handler.RemoveLater(pool, files, url)
			return handler.NotFoundOr(c, err, "User not found")
		}
		if current.ProfilePic != "" && current.ProfilePic != url {
			handler.RemoveLater(pool, files, current.ProfilePic)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}
