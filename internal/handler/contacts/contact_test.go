package contacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/database"
	"storefront/internal/handler/handlertest"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func restore() {
	createContact = store.CreateContact
	listContacts = store.ListContacts
	updateContactStatus = store.UpdateContactStatus
	deleteContact = store.DeleteContact
}

func TestCreateContactHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	createContact = func(ctx context.Context, db database.DB, c *model.Contact) (*model.Contact, error) {
		c.ID = 5
		c.Status = model.ContactNew
		return c, nil
	}
	body := map[string]string{
		"name":    gofakeit.Name(),
		"email":   gofakeit.Email(),
		"subject": "Wholesale pricing",
		"message": gofakeit.Sentence(12),
	}

	t.Run("notifies admins", func(t *testing.T) {
		notifier := &handlertest.FakeNotifier{}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/contact", body)
		require.NoError(t, CreateContactHandler(&database.FakeDB{}, notifier)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"new"`)
		require.Len(t, notifier.Sent, 1)
		require.Equal(t, model.NotificationSystem, notifier.Sent[0].Type)
		require.Equal(t, model.PriorityMedium, notifier.Sent[0].Priority)
	})

	t.Run("fan-out failure still returns 201", func(t *testing.T) {
		notifier := &handlertest.FakeNotifier{CreateErr: errors.New("no admins reachable")}
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/contact", body)
		require.NoError(t, CreateContactHandler(&database.FakeDB{}, notifier)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		c, rec := handlertest.JSON(e, http.MethodPost, "/api/contact", map[string]string{"name": "Kim", "email": "kim@example.com"})
		require.NoError(t, CreateContactHandler(&database.FakeDB{}, &handlertest.FakeNotifier{})(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "subject is required; message is required", handlertest.Message(rec))
	})
}

func TestAdminContacts(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	var gotStatus model.ContactStatus
	listContacts = func(ctx context.Context, db database.DB, status model.ContactStatus) ([]model.Contact, error) {
		gotStatus = status
		return nil, nil
	}
	updateContactStatus = func(ctx context.Context, db database.DB, id int, status model.ContactStatus) (*model.Contact, error) {
		if id != 5 {
			return nil, fmt.Errorf("UpdateContactStatus: %w", store.ErrNotFound)
		}
		return &model.Contact{ID: 5, Status: status}, nil
	}
	deleteContact = func(ctx context.Context, db database.DB, id int) error {
		if id != 5 {
			return fmt.Errorf("DeleteContact: %w", store.ErrNotFound)
		}
		return nil
	}

	c, rec := handlertest.JSON(e, http.MethodGet, "/?status=replied", nil)
	require.NoError(t, ListContactsHandler(&database.FakeDB{})(c))
	require.Equal(t, model.ContactReplied, gotStatus)
	require.JSONEq(t, `[]`, rec.Body.String())

	c, rec = handlertest.JSON(e, http.MethodGet, "/?status=spam", nil)
	require.NoError(t, ListContactsHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = handlertest.JSON(e, http.MethodPut, "/", map[string]string{"status": "archived"})
	handlertest.WithParams(c, "id", "5")
	require.NoError(t, UpdateContactStatusHandler(&database.FakeDB{})(c))
	require.Contains(t, rec.Body.String(), `"status":"archived"`)

	c, rec = handlertest.JSON(e, http.MethodPut, "/", map[string]string{"status": "read"})
	handlertest.WithParams(c, "id", "6")
	require.NoError(t, UpdateContactStatusHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = handlertest.JSON(e, http.MethodDelete, "/", nil)
	handlertest.WithParams(c, "id", "5")
	require.NoError(t, DeleteContactHandler(&database.FakeDB{})(c))
	require.Equal(t, "Contact deleted successfully", handlertest.Message(rec))
}
