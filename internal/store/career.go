package store

import (
	"context"

	"storefront/internal/database"
	"storefront/internal/model"
)

const careerColumns = `id, title, department, location, employment_type, description, requirements,
	is_active, created_by, created_at, updated_at`

func scanCareer(row rowScanner) (model.Career, error) {
	var c model.Career
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Department,
		&c.Location,
		&c.EmploymentType,
		&c.Description,
		&c.Requirements,
		&c.IsActive,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func CreateCareer(ctx context.Context, db database.DB, c *model.Career) (*model.Career, error) {
	if c.Requirements == nil {
		c.Requirements = []string{}
	}
	row := db.QueryRow(ctx,
		`INSERT INTO careers (title, department, location, employment_type, description, requirements,
		                      is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		c.Title,
		c.Department,
		c.Location,
		c.EmploymentType,
		c.Description,
		c.Requirements,
		c.IsActive,
		c.CreatedBy,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, wrap("CreateCareer", err)
	}
	return c, nil
}

func GetCareerByID(ctx context.Context, db database.DB, id int) (*model.Career, error) {
	c, err := scanCareer(db.QueryRow(ctx,
		`SELECT `+careerColumns+` FROM careers WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrap("GetCareerByID", err)
	}
	return &c, nil
}

func ListCareers(ctx context.Context, db database.DB, activeOnly bool) ([]model.Career, error) {
	w := &filter{}
	if activeOnly {
		w.clauses = append(w.clauses, "is_active")
	}
	rows, err := db.Query(ctx,
		`SELECT `+careerColumns+` FROM careers`+w.where()+` ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, wrap("ListCareers", err)
	}
	list, err := collect(rows, scanCareer)
	if err != nil {
		return nil, wrap("ListCareers", err)
	}
	return list, nil
}

func UpdateCareer(ctx context.Context, db database.DB, c *model.Career) (*model.Career, error) {
	if c.Requirements == nil {
		c.Requirements = []string{}
	}
	row := db.QueryRow(ctx,
		`UPDATE careers
		 SET title = $1, department = $2, location = $3, employment_type = $4, description = $5,
		     requirements = $6, is_active = $7, updated_at = now()
		 WHERE id = $8
		 RETURNING created_by, created_at, updated_at`,
		c.Title,
		c.Department,
		c.Location,
		c.EmploymentType,
		c.Description,
		c.Requirements,
		c.IsActive,
		c.ID,
	)
	if err := row.Scan(&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, wrap("UpdateCareer", err)
	}
	return c, nil
}

func DeleteCareer(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM careers WHERE id = $1`, id)
	return affected("DeleteCareer", tag, err)
}
