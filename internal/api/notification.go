package api

import "storefront/internal/model"

// swagger:model api.CreateNotificationRequest
type CreateNotificationRequest struct {
	Type          string         `json:"type" validate:"omitempty,oneof=inquiry comment user product system" example:"system"`
	Title         string         `json:"title" validate:"required,max=200" example:"Maintenance tonight"`
	Message       string         `json:"message" validate:"required" example:"The shop will be read-only from 22:00."`
	RecipientRole string         `json:"recipientRole" validate:"omitempty,oneof=admin user all" example:"all"`
	Priority      string         `json:"priority" validate:"omitempty,oneof=low medium high urgent" example:"high"`
	Data          map[string]any `json:"data"`
}

// swagger:model api.NotificationListResponse
type NotificationListResponse struct {
	Notifications []model.UserNotification `json:"notifications"`
	Pagination    Pagination               `json:"pagination"`
	UnreadCount   int                      `json:"unreadCount" example:"3"`
}

// swagger:model api.UnreadCountResponse
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount" example:"3"`
}

// swagger:model api.MarkAllReadResponse
type MarkAllReadResponse struct {
	Message string `json:"message" example:"All notifications marked as read"`
	Updated int64  `json:"updated" example:"4"`
}
