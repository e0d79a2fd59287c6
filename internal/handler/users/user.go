package users

import (
	"net/http"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/store"
	"storefront/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	listUsers      = store.ListUsers
	getUserByID    = store.GetUserByID
	updateUserRole = store.UpdateUserRole
	deleteUser     = store.DeleteUser
)

// ListUsersHandler 列出所有使用者
// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.NewUserResponses(users))
	}
}

// GetUserHandler 本人或管理員可查詢
// @Summary     Get user
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid user id")
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "User not found")
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// UpdateUserRoleHandler 變更角色；管理員不可變更自己的角色
// @Summary     Change user role
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "User ID"
// @Param       body body     api.UpdateRoleRequest true "新角色"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/users/{id}/role [put]
func UpdateUserRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid user id")
		}
		var req api.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}
		if id == middleware.CurrentUser(c).ID {
			return handler.Fail(c, http.StatusBadRequest, "You cannot change your own role")
		}

		user, err := updateUserRole(c.Request().Context(), db, id, model.Role(req.Role))
		if err != nil {
			return handler.NotFoundOr(c, err, "User not found")
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// DeleteUserHandler 刪除使用者並清掉大頭照；不可刪除自己
// @Summary     Delete user
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /auth/users/{id} [delete]
func DeleteUserHandler(db database.DB, files handler.Files, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid user id")
		}
		if id == middleware.CurrentUser(c).ID {
			return handler.Fail(c, http.StatusBadRequest, "You cannot delete your own account")
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "User not found")
		}
		if err := deleteUser(ctx, db, id); err != nil {
			return handler.NotFoundOr(c, err, "User not found")
		}
		handler.RemoveLater(pool, files, user.ProfilePic)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
	}
}
