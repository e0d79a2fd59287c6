package comments

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
	getProductByID       = store.GetProductByID
	createComment        = store.CreateComment
	listApprovedComments = store.ListApprovedComments
	listComments         = store.ListComments
	approveComment       = store.ApproveComment
	deleteComment        = store.DeleteComment
)

// CreateCommentHandler 新增留言；登入者沿用帳號的姓名與 email，訪客必須自行提供
// @Summary     Comment on a product
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       productId path     int                      true "Product ID"
// @Param       body      body     api.CreateCommentRequest true "留言內容"
// @Success     201       {object} model.Comment
// @Failure     400       {object} api.ErrorResponse
// @Failure     404       {object} api.ErrorResponse
// @Router      /comments/product/{productId} [post]
func CreateCommentHandler(db database.DB, notifier handler.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		productID, ok := handler.ParamID(c, "productId")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid product id")
		}
		var req api.CreateCommentRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}

		comment := &model.Comment{
			ProductID: productID,
			Content:   strings.TrimSpace(req.Content),
			Rating:    req.Rating,
		}
		if u := middleware.CurrentUser(c); u != nil {
			comment.UserID = &u.ID
			comment.CommenterName = u.FullName
			comment.Email = u.Email
		} else {
			comment.CommenterName = strings.TrimSpace(req.CommenterName)
			comment.Email = strings.ToLower(strings.TrimSpace(req.Email))
			if comment.CommenterName == "" || comment.Email == "" {
				return handler.Fail(c, http.StatusBadRequest, "Name and email are required for non-registered users")
			}
		}

		ctx := c.Request().Context()
		product, err := getProductByID(ctx, db, productID)
		if err != nil {
			return handler.NotFoundOr(c, err, "Product not found")
		}
		if !product.IsActive {
			return handler.Fail(c, http.StatusNotFound, "Product not found")
		}

		created, err := createComment(ctx, db, comment)
		if err != nil {
			if errors.Is(err, store.ErrInvalidReference) {
				return handler.Fail(c, http.StatusNotFound, "Product not found")
			}
			return err
		}

		notifier.BestEffort(ctx, service.NewNotification{
			Type:     model.NotificationComment,
			Title:    "New comment awaiting approval",
			Message:  fmt.Sprintf("%s commented on %s", created.CommenterName, product.Name),
			Data:     map[string]any{"commentId": created.ID, "productId": productID},
			Priority: model.PriorityLow,
		})
		return c.JSON(http.StatusCreated, created)
	}
}

// ListProductCommentsHandler 只回傳已審核的留言
// @Summary     Approved comments of a product
// @Tags        comments
// @Produce     json
// @Param       productId path  int true "Product ID"
// @Success     200       {array} model.Comment
// @Router      /comments/product/{productId} [get]
func ListProductCommentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		productID, ok := handler.ParamID(c, "productId")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid product id")
		}
		comments, err := listApprovedComments(c.Request().Context(), db, productID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, nonNil(comments))
	}
}

// ListAllCommentsHandler 管理員審核用列表
// @Summary     All comments
// @Tags        comments
// @Produce     json
// @Param       status query    string false "pending 或 approved"
// @Success     200    {array}  model.Comment
// @Failure     400    {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /comments/admin/all [get]
func ListAllCommentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var approved *bool
		switch c.QueryParam("status") {
		case "":
		case "pending":
			approved = new(bool)
		case "approved":
			t := true
			approved = &t
		default:
			return handler.Fail(c, http.StatusBadRequest, "status must be one of: pending approved")
		}
		comments, err := listComments(c.Request().Context(), db, approved)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, nonNil(comments))
	}
}

// ApproveCommentHandler
// @Summary     Approve comment
// @Tags        comments
// @Produce     json
// @Param       id  path     int true "Comment ID"
// @Success     200 {object} model.Comment
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /comments/admin/{id}/approve [put]
func ApproveCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid comment id")
		}
		comment, err := approveComment(c.Request().Context(), db, id)
		if err != nil {
			return handler.NotFoundOr(c, err, "Comment not found")
		}
		return c.JSON(http.StatusOK, comment)
	}
}

// DeleteCommentHandler
// @Summary     Delete comment
// @Tags        comments
// @Produce     json
// @Param       id  path     int true "Comment ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /comments/admin/{id} [delete]
func DeleteCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid comment id")
		}
		if err := deleteComment(c.Request().Context(), db, id); err != nil {
			return handler.NotFoundOr(c, err, "Comment not found")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Comment deleted successfully"})
	}
}

func nonNil(comments []model.Comment) []model.Comment {
	if comments == nil {
		return []model.Comment{}
	}
	return comments
}
