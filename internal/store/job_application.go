package store

import (
	"context"

	"storefront/internal/database"
	"storefront/internal/model"
)

const applicationColumns = `id, career_id, user_id, full_name, email, phone, cover_letter, resume_url, status,
	created_at, updated_at`

// ApplicationFilter 後台查詢條件，零值代表不過濾
type ApplicationFilter struct {
	CareerID int
	Status   model.ApplicationStatus
}

func scanApplication(row rowScanner) (model.JobApplication, error) {
	var a model.JobApplication
	err := row.Scan(
		&a.ID,
		&a.CareerID,
		&a.UserID,
		&a.FullName,
		&a.Email,
		&a.Phone,
		&a.CoverLetter,
		&a.ResumeURL,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// CreateJobApplication 同一職缺同一 email 只能投遞一次，重複時回傳 ErrConflict
func CreateJobApplication(ctx context.Context, db database.DB, a *model.JobApplication) (*model.JobApplication, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO job_applications (career_id, user_id, full_name, email, phone, cover_letter, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, status, created_at, updated_at`,
		a.CareerID,
		a.UserID,
		a.FullName,
		a.Email,
		a.Phone,
		a.CoverLetter,
		a.ResumeURL,
	)
	if err := row.Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, wrap("CreateJobApplication", err)
	}
	return a, nil
}

func ListApplicationsByUser(ctx context.Context, db database.DB, userID int) ([]model.JobApplication, error) {
	rows, err := db.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListApplicationsByUser", err)
	}
	list, err := collect(rows, scanApplication)
	if err != nil {
		return nil, wrap("ListApplicationsByUser", err)
	}
	return list, nil
}

func ListJobApplications(ctx context.Context, db database.DB, f ApplicationFilter) ([]model.JobApplication, error) {
	w := &filter{}
	if f.CareerID > 0 {
		w.add("career_id = $%d", f.CareerID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	rows, err := db.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications`+w.where()+` ORDER BY created_at DESC, id DESC`,
		w.args...,
	)
	if err != nil {
		return nil, wrap("ListJobApplications", err)
	}
	list, err := collect(rows, scanApplication)
	if err != nil {
		return nil, wrap("ListJobApplications", err)
	}
	return list, nil
}

func UpdateJobApplicationStatus(ctx context.Context, db database.DB, id int, status model.ApplicationStatus) (*model.JobApplication, error) {
	a, err := scanApplication(db.QueryRow(ctx,
		`UPDATE job_applications SET status = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+applicationColumns,
		status,
		id,
	))
	if err != nil {
		return nil, wrap("UpdateJobApplicationStatus", err)
	}
	return &a, nil
}
