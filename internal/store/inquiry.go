package store

import (
	"context"

	"storefront/internal/database"
	"storefront/internal/model"
)

const inquiryColumns = `id, product_id, user_id, name, email, phone, message, status, admin_notes,
	created_at, updated_at`

func scanInquiry(row rowScanner) (model.Inquiry, error) {
	var i model.Inquiry
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.UserID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Message,
		&i.Status,
		&i.AdminNotes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func CreateInquiry(ctx context.Context, db database.DB, i *model.Inquiry) (*model.Inquiry, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO inquiries (product_id, user_id, name, email, phone, message)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at, updated_at`,
		i.ProductID,
		i.UserID,
		i.Name,
		i.Email,
		i.Phone,
		i.Message,
	)
	if err := row.Scan(&i.ID, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, wrap("CreateInquiry", err)
	}
	return i, nil
}

func ListInquiriesByUser(ctx context.Context, db database.DB, userID int) ([]model.Inquiry, error) {
	rows, err := db.Query(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListInquiriesByUser", err)
	}
	list, err := collect(rows, scanInquiry)
	if err != nil {
		return nil, wrap("ListInquiriesByUser", err)
	}
	return list, nil
}

// ListInquiries 後台列表，status 為空字串時不過濾
func ListInquiries(ctx context.Context, db database.DB, status model.InquiryStatus) ([]model.Inquiry, error) {
	w := &filter{}
	if status != "" {
		w.add("status = $%d", status)
	}
	rows, err := db.Query(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries`+w.where()+` ORDER BY created_at DESC, id DESC`,
		w.args...,
	)
	if err != nil {
		return nil, wrap("ListInquiries", err)
	}
	list, err := collect(rows, scanInquiry)
	if err != nil {
		return nil, wrap("ListInquiries", err)
	}
	return list, nil
}

func UpdateInquiryStatus(ctx context.Context, db database.DB, id int, status model.InquiryStatus, adminNotes string) (*model.Inquiry, error) {
	i, err := scanInquiry(db.QueryRow(ctx,
		`UPDATE inquiries SET status = $1, admin_notes = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING `+inquiryColumns,
		status,
		adminNotes,
		id,
	))
	if err != nil {
		return nil, wrap("UpdateInquiryStatus", err)
	}
	return &i, nil
}

func DeleteInquiry(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	return affected("DeleteInquiry", tag, err)
}
