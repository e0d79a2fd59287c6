package notifications

import (
	"net/http"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listNotificationsForUser  = store.ListNotificationsForUser
	countNotificationsForUser = store.CountNotificationsForUser
	countUnreadForUser        = store.CountUnreadForUser
	markNotificationRead      = store.MarkNotificationRead
	markAllNotificationsRead  = store.MarkAllNotificationsRead
	getNotificationByID       = store.GetNotificationByID
	deactivateNotification    = store.DeactivateNotification
)

// ListNotificationsHandler 目前使用者可見的通知，附帶未讀數
// @Summary     My notifications
// @Tags        notifications
// @Produce     json
// @Param       page       query    int  false "頁碼" default(1)
// @Param       limit      query    int  false "每頁筆數" default(10)
// @Param       unreadOnly query    bool false "只列未讀"
// @Success     200        {object} api.NotificationListResponse
// @Failure     401        {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /notifications [get]
func ListNotificationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := middleware.CurrentUser(c)
		ctx := c.Request().Context()
		page, limit, offset := handler.Page(c)
		unreadOnly := c.QueryParam("unreadOnly") == "true"

		list, err := listNotificationsForUser(ctx, db, u.ID, u.Role, unreadOnly, limit, offset)
		if err != nil {
			return err
		}
		total, err := countNotificationsForUser(ctx, db, u.ID, u.Role, unreadOnly)
		if err != nil {
			return err
		}
		unread, err := countUnreadForUser(ctx, db, u.ID, u.Role)
		if err != nil {
			return err
		}
		if list == nil {
			list = []model.UserNotification{}
		}
		return c.JSON(http.StatusOK, api.NotificationListResponse{
			Notifications: list,
			Pagination:    api.NewPagination(page, limit, total),
			UnreadCount:   unread,
		})
	}
}

// UnreadCountHandler
// @Summary     Unread notification count
// @Tags        notifications
// @Produce     json
// @Success     200 {object} api.UnreadCountResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /notifications/unread-count [get]
func UnreadCountHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := middleware.CurrentUser(c)
		n, err := countUnreadForUser(c.Request().Context(), db, u.ID, u.Role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.UnreadCountResponse{UnreadCount: n})
	}
}

// MarkReadHandler 只更新呼叫者自己的已讀狀態
// @Summary     Mark notification read
// @Tags        notifications
// @Produce     json
// @Param       id  path     int true "Notification ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /notifications/{id}/read [put]
func MarkReadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid notification id")
		}
		u := middleware.CurrentUser(c)
		if err := markNotificationRead(c.Request().Context(), db, id, u.ID, u.Role); err != nil {
			return handler.NotFoundOr(c, err, "Notification not found")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Notification marked as read"})
	}
}

// MarkAllReadHandler
// @Summary     Mark all notifications read
// @Tags        notifications
// @Produce     json
// @Success     200 {object} api.MarkAllReadResponse
// @Security    CookieAuth
// @Router      /notifications/read-all [put]
func MarkAllReadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := middleware.CurrentUser(c)
		n, err := markAllNotificationsRead(c.Request().Context(), db, u.ID, u.Role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.MarkAllReadResponse{Message: "All notifications marked as read", Updated: n})
	}
}

// CreateNotificationHandler 管理員手動發送通知，type 預設 system
// @Summary     Send notification
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateNotificationRequest true "通知內容"
// @Success     201  {object} model.Notification
// @Failure     400  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /notifications [post]
func CreateNotificationHandler(notifier handler.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateNotificationRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}
		if req.Type == "" {
			req.Type = string(model.NotificationSystem)
		}

		in := service.NewNotification{
			Type:          model.NotificationType(req.Type),
			Title:         req.Title,
			Message:       req.Message,
			RecipientRole: req.RecipientRole,
			Priority:      model.Priority(req.Priority),
		}
		if req.Data != nil {
			in.Data = req.Data
		}
		n, err := notifier.Create(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, n)
	}
}

// GetNotificationHandler 管理員檢視，含每位收件者的已讀狀態
// @Summary     Get notification
// @Tags        notifications
// @Produce     json
// @Param       id  path     int true "Notification ID"
// @Success     200 {object} model.Notification
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /notifications/{id} [get]
func GetNotificationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid notification id")
		}
		n, err := getNotificationByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "Notification not found")
		}
		return c.JSON(http.StatusOK, n)
	}
}

// DeleteNotificationHandler 軟刪除：設為 inactive，不再出現在任何人的列表
// @Summary     Delete notification
// @Tags        notifications
// @Produce     json
// @Param       id  path     int true "Notification ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /notifications/{id} [delete]
func DeleteNotificationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid notification id")
		}
		if err := deactivateNotification(c.Request().Context(), db, id); err != nil {
			return handler.NotFoundOr(c, err, "Notification not found")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Notification deleted successfully"})
	}
}
