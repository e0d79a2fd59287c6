// File: internal/model/comment.go
package model

import "time"

type Comment struct {
	ID            int       `db:"id" json:"id"`
	ProductID     int       `db:"product_id" json:"productId"`
	UserID        *int      `db:"user_id" json:"userId,omitempty"`
	CommenterName string    `db:"commenter_name" json:"commenterName"`
	Email         string    `db:"email" json:"email"`
	Content       string    `db:"content" json:"content"`
	Rating        *int      `db:"rating" json:"rating,omitempty"`
	IsApproved    bool      `db:"is_approved" json:"isApproved"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
