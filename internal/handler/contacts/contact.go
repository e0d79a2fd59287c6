package contacts

import (
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/api"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createContact       = store.CreateContact
	listContacts        = store.ListContacts
	updateContactStatus = store.UpdateContactStatus
	deleteContact       = store.DeleteContact
)

// CreateContactHandler 聯絡表單
// @Summary     Contact us
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateContactRequest true "聯絡內容"
// @Success     201  {object} model.Contact
// @Failure     400  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Router      /contact [post]
func CreateContactHandler(db database.DB, notifier handler.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateContactRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}

		ctx := c.Request().Context()
		contact, err := createContact(ctx, db, &model.Contact{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:   strings.TrimSpace(req.Phone),
			Subject: strings.TrimSpace(req.Subject),
			Message: strings.TrimSpace(req.Message),
		})
		if err != nil {
			return err
		}

		notifier.BestEffort(ctx, service.NewNotification{
			Type:     model.NotificationSystem,
			Title:    "New contact message",
			Message:  fmt.Sprintf("%s: %s", contact.Name, contact.Subject),
			Data:     map[string]any{"contactId": contact.ID},
			Priority: model.PriorityMedium,
		})
		return c.JSON(http.StatusCreated, contact)
	}
}

// ListContactsHandler
// @Summary     Contact messages
// @Tags        contact
// @Produce     json
// @Param       status query    string false "new / read / replied / archived"
// @Success     200    {array}  model.Contact
// @Failure     400    {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /contact [get]
func ListContactsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := model.ContactStatus(c.QueryParam("status"))
		switch status {
		case "", model.ContactNew, model.ContactRead, model.ContactReplied, model.ContactArchived:
		default:
			return handler.Fail(c, http.StatusBadRequest, "status must be one of: new read replied archived")
		}
		list, err := listContacts(c.Request().Context(), db, status)
		if err != nil {
			return err
		}
		if list == nil {
			list = []model.Contact{}
		}
		return c.JSON(http.StatusOK, list)
	}
}

// UpdateContactStatusHandler
// @Summary     Update contact status
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       id   path     int                            true "Contact ID"
// @Param       body body     api.UpdateContactStatusRequest true "新狀態"
// @Success     200  {object} model.Contact
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /contact/{id}/status [put]
func UpdateContactStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid contact id")
		}
		var req api.UpdateContactStatusRequest
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, err.Error())
		}
		contact, err := updateContactStatus(c.Request().Context(), db, id, model.ContactStatus(req.Status))
		if err != nil {
			return handler.NotFoundOr(c, err, "Contact not found")
		}
		return c.JSON(http.StatusOK, contact)
	}
}

// DeleteContactHandler
// @Summary     Delete contact message
// @Tags        contact
// @Produce     json
// @Param       id  path     int true "Contact ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /contact/{id} [delete]
func DeleteContactHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c, "id")
		if !ok {
			return handler.Fail(c, http.StatusBadRequest, "invalid contact id")
		}
		if err := deleteContact(c.Request().Context(), db, id); err != nil {
			return handler.NotFoundOr(c, err, "Contact not found")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Contact deleted successfully"})
	}
}
