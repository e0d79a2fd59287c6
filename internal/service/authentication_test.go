package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/stretchr/testify/require"
)

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, err := HashPassword("pw1234")
	require.NoError(t, err)

	getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
		if email == "jane@example.com" {
			return &model.User{ID: 1, Email: email, PasswordHash: hash}, nil
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", store.ErrNotFound)
	}

	u, err := AuthenticateUser(context.Background(), &database.FakeDB{}, "jane@example.com", "pw1234")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)

	_, err = AuthenticateUser(context.Background(), &database.FakeDB{}, "jane@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = AuthenticateUser(context.Background(), &database.FakeDB{}, "nobody@example.com", "pw1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
		return nil, errors.New("db down")
	}
	_, err = AuthenticateUser(context.Background(), &database.FakeDB{}, "jane@example.com", "pw1234")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}
