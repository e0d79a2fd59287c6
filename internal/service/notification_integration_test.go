//go:build integration

// 需要真實 PostgreSQL：
//   TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/service/
package service

import (
	"context"
	"os"
	"testing"

	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func integrationDB(t *testing.T) database.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, database.RunMigrations(url))
	db, err := database.NewPgxPool(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(context.Background(),
		`TRUNCATE notification_receipts, notifications, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db database.DB, role model.Role) *model.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), db, &model.User{
		FullName:     gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: "x",
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func readState(t *testing.T, db database.DB, u *model.User, id int) (visible, read bool) {
	t.Helper()
	list, err := store.ListNotificationsForUser(context.Background(), db, u.ID, u.Role, false, 50, 0)
	require.NoError(t, err)
	for _, n := range list {
		if n.ID == id {
			return true, n.IsRead
		}
	}
	return false, false
}

func TestNotificationLifecycleAgainstPostgres(t *testing.T) {
	t.Cleanup(restoreGlobals)
	db := integrationDB(t)
	ctx := context.Background()

	first := seedUser(t, db, model.RoleAdmin)
	second := seedUser(t, db, model.RoleAdmin)
	member := seedUser(t, db, model.RoleUser)

	notifier := NewNotifier(db, zap.NewNop())
	n, err := notifier.Create(ctx, NewNotification{
		Type:    model.NotificationInquiry,
		Title:   "New inquiry",
		Message: "someone asked about the oak table",
		Data:    map[string]any{"inquiryId": 1},
	})
	require.NoError(t, err)

	// 每位管理員恰好一筆未讀紀錄
	stored, err := store.GetNotificationByID(ctx, db, n.ID)
	require.NoError(t, err)
	require.Len(t, stored.Recipients, 2)
	require.ElementsMatch(t, []int{first.ID, second.ID},
		[]int{stored.Recipients[0].UserID, stored.Recipients[1].UserID})
	for _, r := range stored.Recipients {
		require.False(t, r.IsRead)
	}

	// 一般使用者看不到，也不能標記
	visible, _ := readState(t, db, member, n.ID)
	require.False(t, visible)
	require.ErrorIs(t, store.MarkNotificationRead(ctx, db, n.ID, member.ID, member.Role), store.ErrNotFound)

	// 標記已讀只影響呼叫者
	require.NoError(t, store.MarkNotificationRead(ctx, db, n.ID, first.ID, first.Role))
	_, read := readState(t, db, first, n.ID)
	require.True(t, read)
	_, read = readState(t, db, second, n.ID)
	require.False(t, read)

	unread, err := store.CountUnreadForUser(ctx, db, first.ID, first.Role)
	require.NoError(t, err)
	require.Zero(t, unread)
	unread, err = store.CountUnreadForUser(ctx, db, second.ID, second.Role)
	require.NoError(t, err)
	require.Equal(t, 1, unread)

	// 重複標記保留第一次的 read_at
	stored, err = store.GetNotificationByID(ctx, db, n.ID)
	require.NoError(t, err)
	firstReadAt := stored.Recipients[0].ReadAt
	require.NotNil(t, firstReadAt)
	require.NoError(t, store.MarkNotificationRead(ctx, db, n.ID, first.ID, first.Role))
	stored, err = store.GetNotificationByID(ctx, db, n.ID)
	require.NoError(t, err)
	require.True(t, firstReadAt.Equal(*stored.Recipients[0].ReadAt))

	updated, err := store.MarkAllNotificationsRead(ctx, db, second.ID, second.Role)
	require.NoError(t, err)
	require.EqualValues(t, 1, updated)

	// 軟刪除後不再可見
	require.NoError(t, store.DeactivateNotification(ctx, db, n.ID))
	visible, _ = readState(t, db, first, n.ID)
	require.False(t, visible)
}

func TestRoleWideNotificationReachesLaterUsers(t *testing.T) {
	t.Cleanup(restoreGlobals)
	db := integrationDB(t)
	ctx := context.Background()

	early := seedUser(t, db, model.RoleUser)
	n, err := NewNotifier(db, zap.NewNop()).Create(ctx, NewNotification{
		Type:          model.NotificationSystem,
		Title:         "Maintenance tonight",
		Message:       "read-only from 22:00",
		RecipientRole: "all",
	})
	require.NoError(t, err)
	late := seedUser(t, db, model.RoleUser)

	visible, read := readState(t, db, early, n.ID)
	require.True(t, visible)
	require.False(t, read)

	// 沒有收件紀錄的後註冊使用者視為未讀，標記時補上紀錄
	visible, read = readState(t, db, late, n.ID)
	require.True(t, visible)
	require.False(t, read)
	require.NoError(t, store.MarkNotificationRead(ctx, db, n.ID, late.ID, late.Role))
	_, read = readState(t, db, late, n.ID)
	require.True(t, read)
	_, read = readState(t, db, early, n.ID)
	require.False(t, read)
}

func TestPurgeExpiredAgainstPostgres(t *testing.T) {
	t.Cleanup(restoreGlobals)
	db := integrationDB(t)
	ctx := context.Background()

	admin := seedUser(t, db, model.RoleAdmin)
	notifier := NewNotifier(db, zap.NewNop())
	stale, err := notifier.Create(ctx, NewNotification{Type: model.NotificationSystem, Title: "old", Message: "old"})
	require.NoError(t, err)
	fresh, err := notifier.Create(ctx, NewNotification{Type: model.NotificationSystem, Title: "new", Message: "new"})
	require.NoError(t, err)

	_, err = db.Exec(ctx, `UPDATE notifications SET expires_at = now() - interval '1 minute' WHERE id = $1`, stale.ID)
	require.NoError(t, err)

	// 過期但尚未清除的通知已不可見
	visible, _ := readState(t, db, admin, stale.ID)
	require.False(t, visible)

	require.NoError(t, notifier.PurgeExpired(ctx))
	_, err = store.GetNotificationByID(ctx, db, stale.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = store.GetNotificationByID(ctx, db, fresh.ID)
	require.NoError(t, err)
}
