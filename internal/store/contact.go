package store

import (
	"context"

	"storefront/internal/database"
	"storefront/internal/model"
)

const contactColumns = `id, name, email, phone, subject, message, status, created_at, updated_at`

func scanContact(row rowScanner) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Subject,
		&c.Message,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func CreateContact(ctx context.Context, db database.DB, c *model.Contact) (*model.Contact, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, subject, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at, updated_at`,
		c.Name,
		c.Email,
		c.Phone,
		c.Subject,
		c.Message,
	)
	if err := row.Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, wrap("CreateContact", err)
	}
	return c, nil
}

func ListContacts(ctx context.Context, db database.DB, status model.ContactStatus) ([]model.Contact, error) {
	w := &filter{}
	if status != "" {
		w.add("status = $%d", status)
	}
	rows, err := db.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts`+w.where()+` ORDER BY created_at DESC, id DESC`,
		w.args...,
	)
	if err != nil {
		return nil, wrap("ListContacts", err)
	}
	list, err := collect(rows, scanContact)
	if err != nil {
		return nil, wrap("ListContacts", err)
	}
	return list, nil
}

func UpdateContactStatus(ctx context.Context, db database.DB, id int, status model.ContactStatus) (*model.Contact, error) {
	c, err := scanContact(db.QueryRow(ctx,
		`UPDATE contacts SET status = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+contactColumns,
		status,
		id,
	))
	if err != nil {
		return nil, wrap("UpdateContactStatus", err)
	}
	return &c, nil
}

func DeleteContact(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return affected("DeleteContact", tag, err)
}
