// File: internal/service/notification.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/store"

	"go.uber.org/zap"
)

var (
	listUserIDsByRole          = store.ListUserIDsByRole
	createNotification         = store.CreateNotification
	deleteExpiredNotifications = store.DeleteExpiredNotifications
)

// NewNotification 建立通知所需的內容，RecipientRole 空白時為 admin，Priority 空白時為 medium
type NewNotification struct {
	Type          model.NotificationType
	Title         string
	Message       string
	Data          any
	RecipientRole string
	Priority      model.Priority
}

// Notifier 將通知寫給某個角色的所有使用者，每人一筆未讀紀錄
type Notifier struct {
	db     database.DB
	logger *zap.Logger
}

func NewNotifier(db database.DB, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{db: db, logger: logger}
}

func validRecipientRole(role string) bool {
	return role == model.RecipientAll || model.Role(role).Valid()
}

func validPriority(p model.Priority) bool {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
		return true
	}
	return false
}

func validType(t model.NotificationType) bool {
	switch t {
	case model.NotificationInquiry, model.NotificationComment, model.NotificationUser,
		model.NotificationProduct, model.NotificationSystem:
		return true
	}
	return false
}

// Create 解析收件者並寫入通知；expires_at 為現在加 30 天
func (n *Notifier) Create(ctx context.Context, in NewNotification) (*model.Notification, error) {
	notification, err := n.create(ctx, in)
	if err != nil {
		metrics.NotificationFanout.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.NotificationFanout.WithLabelValues("ok").Inc()
	return notification, nil
}

func (n *Notifier) create(ctx context.Context, in NewNotification) (*model.Notification, error) {
	if in.RecipientRole == "" {
		in.RecipientRole = string(model.RoleAdmin)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !validType(in.Type) {
		return nil, fmt.Errorf("notification: unknown type %q", in.Type)
	}
	if !validRecipientRole(in.RecipientRole) {
		return nil, fmt.Errorf("notification: unknown recipient role %q", in.RecipientRole)
	}
	if !validPriority(in.Priority) {
		return nil, fmt.Errorf("notification: unknown priority %q", in.Priority)
	}

	var data json.RawMessage
	if in.Data != nil {
		raw, err := json.Marshal(in.Data)
		if err != nil {
			return nil, fmt.Errorf("notification: encode data: %w", err)
		}
		data = raw
	}

	ids, err := listUserIDsByRole(ctx, n.db, in.RecipientRole)
	if err != nil {
		return nil, fmt.Errorf("notification: resolve recipients: %w", err)
	}

	return createNotification(ctx, n.db, &model.Notification{
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		Data:          data,
		RecipientRole: in.RecipientRole,
		Priority:      in.Priority,
		ExpiresAt:     timeNow().Add(store.NotificationTTL),
	}, ids)
}

// BestEffort 呼叫 Create，失敗只記錄 log，不影響呼叫端
func (n *Notifier) BestEffort(ctx context.Context, in NewNotification) {
	if _, err := n.Create(ctx, in); err != nil {
		n.logger.Warn("notification fan-out failed",
			zap.String("type", string(in.Type)),
			zap.String("title", in.Title),
			zap.Error(err),
		)
	}
}

// PurgeExpired 刪除過期通知
func (n *Notifier) PurgeExpired(ctx context.Context) error {
	removed, err := deleteExpiredNotifications(ctx, n.db)
	if err != nil {
		return err
	}
	metrics.ExpiredNotificationsPurged.Add(float64(removed))
	if removed > 0 {
		n.logger.Info("purged expired notifications", zap.Int64("count", removed))
	}
	return nil
}
