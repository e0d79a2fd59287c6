package careers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/database"
	"storefront/internal/handler/handlertest"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/stretchr/testify/require"
)

func restore() {
	createCareer = store.CreateCareer
	getCareerByID = store.GetCareerByID
	listCareers = store.ListCareers
	updateCareer = store.UpdateCareer
	deleteCareer = store.DeleteCareer
}

func stubCareers() {
	getCareerByID = func(ctx context.Context, db database.DB, id int) (*model.Career, error) {
		switch id {
		case 1:
			return &model.Career{ID: 1, Title: "Backend Engineer", IsActive: true, Requirements: []string{"Go"}}, nil
		case 2:
			return &model.Career{ID: 2, Title: "Closed role", IsActive: false}, nil
		}
		return nil, fmt.Errorf("GetCareerByID: %w", store.ErrNotFound)
	}
}

func TestListCareers(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	var activeOnly bool
	listCareers = func(ctx context.Context, db database.DB, active bool) ([]model.Career, error) {
		activeOnly = active
		return nil, nil
	}

	c, rec := handlertest.JSON(e, http.MethodGet, "/api/careers", nil)
	require.NoError(t, ListCareersHandler(&database.FakeDB{})(c))
	require.True(t, activeOnly)
	require.JSONEq(t, `[]`, rec.Body.String())

	c, _ = handlertest.JSON(e, http.MethodGet, "/api/careers/admin/all", nil)
	require.NoError(t, ListAllCareersHandler(&database.FakeDB{})(c))
	require.False(t, activeOnly)
}

func TestGetCareerHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	stubCareers()

	cases := []struct {
		name string
		id   string
		user *model.User
		code int
	}{
		{"active", "1", nil, http.StatusOK},
		{"closed for public", "2", nil, http.StatusNotFound},
		{"closed for member", "2", handlertest.Member(), http.StatusNotFound},
		{"closed for admin", "2", handlertest.Admin(), http.StatusOK},
		{"unknown", "3", nil, http.StatusNotFound},
		{"bad id", "x", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := handlertest.JSON(e, http.MethodGet, "/", nil)
			handlertest.WithParams(c, "id", tc.id)
			if tc.user != nil {
				handlertest.AsUser(c, tc.user)
			}
			require.NoError(t, GetCareerHandler(&database.FakeDB{})(c))
			require.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCreateCareerHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	var saved *model.Career
	createCareer = func(ctx context.Context, db database.DB, c *model.Career) (*model.Career, error) {
		saved = c
		c.ID = 9
		return c, nil
	}

	c, rec := handlertest.JSON(e, http.MethodPost, "/api/careers", map[string]any{
		"title":        " Data Engineer ",
		"description":  "Pipelines",
		"requirements": []string{"SQL", " ", "Go "},
	})
	handlertest.AsUser(c, handlertest.Admin())
	require.NoError(t, CreateCareerHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Data Engineer", saved.Title)
	require.Equal(t, []string{"SQL", "Go"}, saved.Requirements)
	require.Equal(t, "full-time", saved.EmploymentType)
	require.True(t, saved.IsActive)
	require.Equal(t, 1, *saved.CreatedBy)

	c, rec = handlertest.JSON(e, http.MethodPost, "/api/careers", map[string]any{
		"title": "Intern", "description": "x", "employmentType": "forever",
	})
	handlertest.AsUser(c, handlertest.Admin())
	require.NoError(t, CreateCareerHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "employmentType must be one of: full-time part-time contract internship", handlertest.Message(rec))
}

func TestUpdateCareerHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	stubCareers()
	updateCareer = func(ctx context.Context, db database.DB, c *model.Career) (*model.Career, error) {
		return c, nil
	}

	c, rec := handlertest.JSON(e, http.MethodPut, "/", map[string]any{
		"title": "Senior Backend Engineer", "description": "APIs",
	})
	handlertest.AsUser(handlertest.WithParams(c, "id", "1"), handlertest.Admin())
	require.NoError(t, UpdateCareerHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Career
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Senior Backend Engineer", got.Title)
	require.True(t, got.IsActive)
	require.Empty(t, got.Requirements)

	c, rec = handlertest.JSON(e, http.MethodPut, "/", map[string]any{
		"title": "Closed role", "description": "x", "isActive": true,
	})
	handlertest.AsUser(handlertest.WithParams(c, "id", "2"), handlertest.Admin())
	require.NoError(t, UpdateCareerHandler(&database.FakeDB{})(c))
	require.Contains(t, rec.Body.String(), `"isActive":true`)

	c, rec = handlertest.JSON(e, http.MethodPut, "/", map[string]any{"title": "x", "description": "y"})
	handlertest.AsUser(handlertest.WithParams(c, "id", "3"), handlertest.Admin())
	require.NoError(t, UpdateCareerHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCareerHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	deleteCareer = func(ctx context.Context, db database.DB, id int) error {
		if id != 1 {
			return fmt.Errorf("DeleteCareer: %w", store.ErrNotFound)
		}
		return nil
	}

	c, rec := handlertest.JSON(e, http.MethodDelete, "/", nil)
	handlertest.WithParams(c, "id", "1")
	require.NoError(t, DeleteCareerHandler(&database.FakeDB{})(c))
	require.Equal(t, "Career deleted successfully", handlertest.Message(rec))

	c, rec = handlertest.JSON(e, http.MethodDelete, "/", nil)
	handlertest.WithParams(c, "id", "4")
	require.NoError(t, DeleteCareerHandler(&database.FakeDB{})(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
