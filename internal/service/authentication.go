// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/store"
)

// ErrInvalidCredentials email 不存在或密碼錯誤，兩者不區分
var ErrInvalidCredentials = errors.New("invalid credentials")

var getUserByEmail = store.GetUserByEmail

// AuthenticateUser 以 email 查詢使用者並比對密碼，成功回傳使用者
func AuthenticateUser(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
	user, err := getUserByEmail(ctx, db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("AuthenticateUser: %w", err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
