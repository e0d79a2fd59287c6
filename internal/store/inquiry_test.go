package store

import (
	"context"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/stretchr/testify/require"
)

func inquiryVals(id int, status model.InquiryStatus) []any {
	now := time.Now()
	return []any{id, intPtr(2), intPtr(5), "Ann", "ann@example.com", "", "price?", string(status), "", now, now}
}

func TestCreateInquiry(t *testing.T) {
	now := time.Now()
	db := &database.FakeDB{QueryRowFn: (&recorded{}).row(&fakeRow{vals: []any{1, "pending", now, now}})}
	i, err := CreateInquiry(context.Background(), db, &model.Inquiry{Name: "Ann", Email: "ann@example.com", Message: "m"})
	require.NoError(t, err)
	require.Equal(t, model.InquiryPending, i.Status)
}

func TestListInquiries(t *testing.T) {
	rec := &recorded{}
	db := &database.FakeDB{QueryFn: rec.rows(&fakeRows{data: [][]any{inquiryVals(1, model.InquiryResolved)}}, nil)}

	list, err := ListInquiries(context.Background(), db, model.InquiryResolved)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, []any{model.InquiryResolved}, rec.args)

	db.QueryFn = rec.rows(&fakeRows{data: [][]any{inquiryVals(1, model.InquiryPending)}}, nil)
	list, err = ListInquiriesByUser(context.Background(), db, 5)
	require.NoError(t, err)
	require.Equal(t, 5, *list[0].UserID)
	require.Equal(t, []any{5}, rec.args)
}

func TestUpdateInquiryStatus(t *testing.T) {
	rec := &recorded{}
	db := &database.FakeDB{QueryRowFn: rec.row(&fakeRow{vals: inquiryVals(1, model.InquiryClosed)})}
	i, err := UpdateInquiryStatus(context.Background(), db, 1, model.InquiryClosed, "done")
	require.NoError(t, err)
	require.Equal(t, model.InquiryClosed, i.Status)
	require.Equal(t, []any{model.InquiryClosed, "done", 1}, rec.args)

	db.ExecFn = rec.exec("DELETE 1", nil)
	require.NoError(t, DeleteInquiry(context.Background(), db, 1))
}
