// File: internal/model/inquiry.go
package model

import "time"

type InquiryStatus string

const (
	InquiryPending    InquiryStatus = "pending"
	InquiryInProgress InquiryStatus = "in-progress"
	InquiryResolved   InquiryStatus = "resolved"
	InquiryClosed     InquiryStatus = "closed"
)

type Inquiry struct {
	ID         int           `db:"id" json:"id"`
	ProductID  *int          `db:"product_id" json:"productId,omitempty"`
	UserID     *int          `db:"user_id" json:"userId,omitempty"`
	Name       string        `db:"name" json:"name"`
	Email      string        `db:"email" json:"email"`
	Phone      string        `db:"phone" json:"phone"`
	Message    string        `db:"message" json:"message"`
	Status     InquiryStatus `db:"status" json:"status"`
	AdminNotes string        `db:"admin_notes" json:"adminNotes"`
	CreatedAt  time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updatedAt"`
}
