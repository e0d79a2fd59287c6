package store

import (
	"context"

	"storefront/internal/database"
	"storefront/internal/model"
)

const userColumns = `id, full_name, email, password_hash, profile_pic, role, created_at, updated_at`

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.ProfilePic,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return &u, nil
}

// GetUserByEmail email 比對不分大小寫
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	))
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return &u, nil
}

// CreateUser 新增使用者；email 重複回傳 ErrConflict
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	row := db.QueryRow(ctx,
		`INSERT INTO users (full_name, email, password_hash, profile_pic, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.FullName,
		u.Email,
		u.PasswordHash,
		u.ProfilePic,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

// ListUserIDsByRole 回傳該角色所有使用者 id；role 為 "all" 時回傳全部使用者
func ListUserIDsByRole(ctx context.Context, db database.DB, role string) ([]int, error) {
	query := `SELECT id FROM users WHERE role = $1 ORDER BY id`
	args := []any{role}
	if role == model.RecipientAll {
		query = `SELECT id FROM users ORDER BY id`
		args = nil
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("ListUserIDsByRole", err)
	}
	ids, err := collect(rows, func(r rowScanner) (int, error) {
		var id int
		err := r.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, wrap("ListUserIDsByRole", err)
	}
	return ids, nil
}

func UpdateUserProfilePic(ctx context.Context, db database.DB, userID int, url string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET profile_pic = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+userColumns,
		url,
		userID,
	))
	if err != nil {
		return nil, wrap("UpdateUserProfilePic", err)
	}
	return &u, nil
}

func UpdateUserRole(ctx context.Context, db database.DB, userID int, role model.Role) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET role = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+userColumns,
		role,
		userID,
	))
	if err != nil {
		return nil, wrap("UpdateUserRole", err)
	}
	return &u, nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	return affected("DeleteUser", tag, err)
}
