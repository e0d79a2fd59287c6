// File: internal/model/notification.go
package model

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotificationInquiry NotificationType = "inquiry"
	NotificationComment NotificationType = "comment"
	NotificationUser    NotificationType = "user"
	NotificationProduct NotificationType = "product"
	NotificationSystem  NotificationType = "system"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// RecipientAll targets every user regardless of role.
const RecipientAll = "all"

// Receipt 每位收件者各自的已讀狀態
type Receipt struct {
	UserID int        `db:"user_id" json:"user"`
	IsRead bool       `db:"is_read" json:"isRead"`
	ReadAt *time.Time `db:"read_at" json:"readAt,omitempty"`
}

type Notification struct {
	ID            int              `db:"id" json:"id"`
	Type          NotificationType `db:"type" json:"type"`
	Title         string           `db:"title" json:"title"`
	Message       string           `db:"message" json:"message"`
	Data          json.RawMessage  `db:"data" json:"data,omitempty"`
	RecipientRole string           `db:"recipient_role" json:"recipientRole"`
	Recipients    []Receipt        `json:"recipients,omitempty"`
	Priority      Priority         `db:"priority" json:"priority"`
	IsActive      bool             `db:"is_active" json:"isActive"`
	ExpiresAt     time.Time        `db:"expires_at" json:"expiresAt"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
}

// UserNotification is a notification as seen by one recipient.
type UserNotification struct {
	Notification
	IsRead bool       `json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`
}
