// File: internal/model/career.go
package model

import "time"

type Career struct {
	ID             int       `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Department     string    `db:"department" json:"department"`
	Location       string    `db:"location" json:"location"`
	EmploymentType string    `db:"employment_type" json:"employmentType"`
	Description    string    `db:"description" json:"description"`
	Requirements   []string  `db:"requirements" json:"requirements"`
	IsActive       bool      `db:"is_active" json:"isActive"`
	CreatedBy      *int      `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

type JobApplication struct {
	ID          int               `db:"id" json:"id"`
	CareerID    int               `db:"career_id" json:"careerId"`
	UserID      *int              `db:"user_id" json:"userId,omitempty"`
	FullName    string            `db:"full_name" json:"fullName"`
	Email       string            `db:"email" json:"email"`
	Phone       string            `db:"phone" json:"phone"`
	CoverLetter string            `db:"cover_letter" json:"coverLetter"`
	ResumeURL   string            `db:"resume_url" json:"resume"`
	Status      ApplicationStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updatedAt"`
}
