package store

import (
	"context"

	"storefront/internal/database"
	"storefront/internal/model"
)

const commentColumns = `id, product_id, user_id, commenter_name, email, content, rating, is_approved,
	created_at, updated_at`

func scanComment(row rowScanner) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID,
		&c.ProductID,
		&c.UserID,
		&c.CommenterName,
		&c.Email,
		&c.Content,
		&c.Rating,
		&c.IsApproved,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// CreateComment 新留言一律為未審核
func CreateComment(ctx context.Context, db database.DB, c *model.Comment) (*model.Comment, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO comments (product_id, user_id, commenter_name, email, content, rating)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, is_approved, created_at, updated_at`,
		c.ProductID,
		c.UserID,
		c.CommenterName,
		c.Email,
		c.Content,
		c.Rating,
	)
	if err := row.Scan(&c.ID, &c.IsApproved, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, wrap("CreateComment", err)
	}
	return c, nil
}

func ListApprovedComments(ctx context.Context, db database.DB, productID int) ([]model.Comment, error) {
	rows, err := db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE product_id = $1 AND is_approved
		 ORDER BY created_at DESC, id DESC`,
		productID,
	)
	if err != nil {
		return nil, wrap("ListApprovedComments", err)
	}
	comments, err := collect(rows, scanComment)
	if err != nil {
		return nil, wrap("ListApprovedComments", err)
	}
	return comments, nil
}

// ListComments 後台列表；approved 為 nil 時不過濾
func ListComments(ctx context.Context, db database.DB, approved *bool) ([]model.Comment, error) {
	w := &filter{}
	if approved != nil {
		w.add("is_approved = $%d", *approved)
	}
	rows, err := db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments`+w.where()+` ORDER BY created_at DESC, id DESC`,
		w.args...,
	)
	if err != nil {
		return nil, wrap("ListComments", err)
	}
	comments, err := collect(rows, scanComment)
	if err != nil {
		return nil, wrap("ListComments", err)
	}
	return comments, nil
}

func ApproveComment(ctx context.Context, db database.DB, id int) (*model.Comment, error) {
	c, err := scanComment(db.QueryRow(ctx,
		`UPDATE comments SET is_approved = true, updated_at = now()
		 WHERE id = $1
		 RETURNING `+commentColumns,
		id,
	))
	if err != nil {
		return nil, wrap("ApproveComment", err)
	}
	return &c, nil
}

func DeleteComment(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return affected("DeleteComment", tag, err)
}
