package store

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"
)

// NotificationTTL 通知的有效期限
const NotificationTTL = 30 * 24 * time.Hour

const notificationColumns = `n.id, n.type, n.title, n.message, n.data, n.recipient_role, n.priority,
	n.is_active, n.expires_at, n.created_at`

// visibleTo 產生可見性條件：有效、未過期，且角色相符或已有個人收件紀錄。
// 查詢需 LEFT JOIN notification_receipts r ON r.notification_id = n.id AND r.user_id = $userParam
func visibleTo(roleParam int) string {
	return fmt.Sprintf(`n.is_active AND n.expires_at > now()
		AND (n.recipient_role = 'all' OR n.recipient_role = $%d OR r.user_id IS NOT NULL)`, roleParam)
}

const receiptJoin = ` LEFT JOIN notification_receipts r ON r.notification_id = n.id AND r.user_id = $1`

func scanNotification(row rowScanner, extra ...any) (model.Notification, error) {
	var n model.Notification
	dest := append([]any{
		&n.ID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Data,
		&n.RecipientRole,
		&n.Priority,
		&n.IsActive,
		&n.ExpiresAt,
		&n.CreatedAt,
	}, extra...)
	err := row.Scan(dest...)
	return n, err
}

func scanUserNotification(row rowScanner) (model.UserNotification, error) {
	var un model.UserNotification
	n, err := scanNotification(row, &un.IsRead, &un.ReadAt)
	un.Notification = n
	return un, err
}

// CreateNotification 以單一語句寫入通知與每位收件者的未讀紀錄
func CreateNotification(ctx context.Context, db database.DB, n *model.Notification, recipientIDs []int) (*model.Notification, error) {
	data := n.Data
	if len(data) == 0 {
		data = []byte(`{}`)
	}
	if recipientIDs == nil {
		recipientIDs = []int{}
	}
	row := db.QueryRow(ctx,
		`WITH n AS (
		     INSERT INTO notifications (type, title, message, data, recipient_role, priority, expires_at)
		     VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7)
		     RETURNING id, is_active, created_at, expires_at
		 ), r AS (
		     INSERT INTO notification_receipts (notification_id, user_id)
		     SELECT n.id, u FROM n, unnest($8::int[]) AS u
		 )
		 SELECT id, is_active, created_at, expires_at FROM n`,
		n.Type,
		n.Title,
		n.Message,
		string(data),
		n.RecipientRole,
		n.Priority,
		n.ExpiresAt,
		recipientIDs,
	)
	if err := row.Scan(&n.ID, &n.IsActive, &n.CreatedAt, &n.ExpiresAt); err != nil {
		return nil, wrap("CreateNotification", err)
	}
	n.Data = data
	n.Recipients = make([]model.Receipt, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		n.Recipients = append(n.Recipients, model.Receipt{UserID: id})
	}
	return n, nil
}

// ListNotificationsForUser 回傳使用者可見的通知，沒有個人紀錄者視為未讀
func ListNotificationsForUser(ctx context.Context, db database.DB, userID int, role model.Role, unreadOnly bool, limit, offset int) ([]model.UserNotification, error) {
	query := `SELECT ` + notificationColumns + `, COALESCE(r.is_read, false), r.read_at
		FROM notifications n` + receiptJoin + `
		WHERE ` + visibleTo(2)
	if unreadOnly {
		query += ` AND NOT COALESCE(r.is_read, false)`
	}
	query += ` ORDER BY n.created_at DESC, n.id DESC LIMIT $3 OFFSET $4`

	rows, err := db.Query(ctx, query, userID, role, limit, offset)
	if err != nil {
		return nil, wrap("ListNotificationsForUser", err)
	}
	list, err := collect(rows, scanUserNotification)
	if err != nil {
		return nil, wrap("ListNotificationsForUser", err)
	}
	return list, nil
}

func CountNotificationsForUser(ctx context.Context, db database.DB, userID int, role model.Role, unreadOnly bool) (int, error) {
	query := `SELECT count(*) FROM notifications n` + receiptJoin + ` WHERE ` + visibleTo(2)
	if unreadOnly {
		query += ` AND NOT COALESCE(r.is_read, false)`
	}
	var total int
	if err := db.QueryRow(ctx, query, userID, role).Scan(&total); err != nil {
		return 0, wrap("CountNotificationsForUser", err)
	}
	return total, nil
}

func CountUnreadForUser(ctx context.Context, db database.DB, userID int, role model.Role) (int, error) {
	return CountNotificationsForUser(ctx, db, userID, role, true)
}

// MarkNotificationRead 只更新呼叫者自己的收件紀錄；通知不可見時回傳 ErrNotFound
func MarkNotificationRead(ctx context.Context, db database.DB, notificationID, userID int, role model.Role) error {
	tag, err := db.Exec(ctx,
		`INSERT INTO notification_receipts (notification_id, user_id, is_read, read_at)
		 SELECT n.id, $1, true, now()
		 FROM notifications n`+receiptJoin+`
		 WHERE n.id = $3 AND `+visibleTo(2)+`
		 ON CONFLICT (notification_id, user_id)
		 DO UPDATE SET is_read = true, read_at = COALESCE(notification_receipts.read_at, now())`,
		userID,
		role,
		notificationID,
	)
	return affected("MarkNotificationRead", tag, err)
}

// MarkAllNotificationsRead 將呼叫者所有可見未讀通知設為已讀，回傳更新筆數
func MarkAllNotificationsRead(ctx context.Context, db database.DB, userID int, role model.Role) (int64, error) {
	tag, err := db.Exec(ctx,
		`INSERT INTO notification_receipts (notification_id, user_id, is_read, read_at)
		 SELECT n.id, $1, true, now()
		 FROM notifications n`+receiptJoin+`
		 WHERE `+visibleTo(2)+` AND NOT COALESCE(r.is_read, false)
		 ON CONFLICT (notification_id, user_id)
		 DO UPDATE SET is_read = true, read_at = now()`,
		userID,
		role,
	)
	if err != nil {
		return 0, wrap("MarkAllNotificationsRead", err)
	}
	return tag.RowsAffected(), nil
}

// GetNotificationByID 後台檢視，附上所有收件紀錄
func GetNotificationByID(ctx context.Context, db database.DB, id int) (*model.Notification, error) {
	n, err := scanNotification(db.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications n WHERE n.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrap("GetNotificationByID", err)
	}

	rows, err := db.Query(ctx,
		`SELECT user_id, is_read, read_at FROM notification_receipts
		 WHERE notification_id = $1 ORDER BY user_id`,
		id,
	)
	if err != nil {
		return nil, wrap("GetNotificationByID", err)
	}
	n.Recipients, err = collect(rows, func(r rowScanner) (model.Receipt, error) {
		var rc model.Receipt
		err := r.Scan(&rc.UserID, &rc.IsRead, &rc.ReadAt)
		return rc, err
	})
	if err != nil {
		return nil, wrap("GetNotificationByID", err)
	}
	return &n, nil
}

// DeactivateNotification 軟刪除
func DeactivateNotification(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `UPDATE notifications SET is_active = false WHERE id = $1`, id)
	return affected("DeactivateNotification", tag, err)
}

// DeleteExpiredNotifications 刪除已過期通知（收件紀錄由 FK cascade 一併刪除）
func DeleteExpiredNotifications(ctx context.Context, db database.DB) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM notifications WHERE expires_at <= now()`)
	if err != nil {
		return 0, wrap("DeleteExpiredNotifications", err)
	}
	return tag.RowsAffected(), nil
}
