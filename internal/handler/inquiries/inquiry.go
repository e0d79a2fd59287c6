package inquiries

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

	"github.com/labstack/echo/v4"
)

var (
	getProductByID      = store.GetProductByID
	createInquiry       = store.CreateInquiry
	listInquiriesByUser = store.ListInquiriesByUser
	listInquiries       = store.ListInquiries
	updateInquiryStatus = store.UpdateInquiryStatus
	deleteInquiry       = store.DeleteInquiry
)

// CreateInquiryHandler 建立詢價單並通知管理員；通知失敗不影響回應
// @Summary     Send an inquiry
// @Tags        inquiries
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateInquiryRequest true "詢價內容"
// @Success     201  {object} model.Inquiry
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Router      /inquiries [post]
func CreateInquiryHandler(db database.DB, notifier handler.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateInquiryRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}

		inquiry := &model.Inquiry{
			ProductID: req.ProductID,
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Message:   strings.TrimSpace(req.Message),
		}
		if u := middleware.CurrentUser(c); u != nil {
			inquiry.UserID = &u.ID
		}

		ctx := c.Request().Context()
		if req.ProductID != nil {
			if _, err := getProductByID(ctx, db, *req.ProductID); err != nil {
				return handler.NotFoundOr(c, err, "Product not found")
			}
		}
		created, err := createInquiry(ctx, db, inquiry)
		if err != nil {
			// 查詢後商品才被刪除時由外鍵擋下
			if errors.Is(err, store.ErrInvalidReference) {
				return handler.Fail(c, http.StatusNotFound, "Product not found")
			}
			return err
		}

		priority := model.PriorityMedium
		data := map[string]any{"inquiryId": created.ID}
		if created.ProductID != nil {
			priority = model.PriorityHigh
			data["productId"] = *created.ProductID
		}
		notifier.BestEffort(ctx, service.NewNotification{
			Type:     model.NotificationInquiry,
			Title:    "New inquiry",
			Message:  fmt.Sprintf("%s <%s> sent an inquiry", created.Name, created.Email),
			Data:     data,
			Priority: priority,
		})
		return c.JSON(http.StatusCreated, created)
	}
}

// MyInquiriesHandler 目前使用者送出的詢價單
// @Summary     My inquiries
// @Tags        inquiries
// @Produce     json
// @Success     200 {array}  model.Inquiry
// @Failure     401 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /inquiries/my [get]
func MyInquiriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		inquiries, err := listInquiriesByUser(c.Request().Context(), db, middleware.CurrentUser(c).ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, nonNil(inquiries))
	}
}

// ListInquiriesHandler
// @Summary     All inquiries
// @Tags        inquiries
// @Produce     json
// @Param       status query    string false "pending / in-progress / resolved / closed"
// @Success     200    {array}  model.Inquiry
// @Failure     400    {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /inquiries [get]
func ListInquiriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := model.InquiryStatus(c.QueryParam("status"))
		switch status {
		case "", model.InquiryPending, model.InquiryInProgress, model.InquiryResolved, model.InquiryClosed:
		default:
			return handler.Fail(c, http.StatusBadRequest, "status must be one of: pending in-progress resolved closed")
		}
		inquiries, err := listInquiries(c.Request().Context(), db, status)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, nonNil(inquiries))
	}
}

// UpdateInquiryStatusHandler
// @Summary     Update inquiry status
// @Tags        inquiries
// @Accept      json
// @Produce     json
// @Param       id   path     int                            true "Inquiry ID"
// @Param       body body     api.UpdateInquiryStatusRequest true "狀態與備註"
// @Success     200  {object} model.Inquiry
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /inquiries/{id}/status [put]
func UpdateInquiryStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid inquiry id")
		}
		var req api.UpdateInquiryStatusRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}
		inquiry, err := updateInquiryStatus(c.Request().Context(), db, id, model.InquiryStatus(req.Status), req.AdminNotes)
		if err != nil {
			return handler.NotFoundOr(c, err, "Inquiry not found")
		}
		return c.JSON(http.StatusOK, inquiry)
	}
}

// DeleteInquiryHandler
// @Summary     Delete inquiry
// @Tags        inquiries
// @Produce     json
// @Param       id  path     int true "Inquiry ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /inquiries/{id} [delete]
func DeleteInquiryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid inquiry id")
		}
		if err := deleteInquiry(c.Request().Context(), db, id); err != nil {
			return handler.NotFoundOr(c, err, "Inquiry not found")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Inquiry deleted successfully"})
	}
}

func nonNil(inquiries []model.Inquiry) []model.Inquiry {
	if inquiries == nil {
		return []model.Inquiry{}
	}
	return inquiries
}
