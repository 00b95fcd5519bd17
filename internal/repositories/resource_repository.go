package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"agencylms/internal/domain/models"
)

type ResourceRepository struct {
	DB *sql.DB
}

func (r ResourceRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Resource, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, course_id, title, kind, url, created_at
		FROM resources WHERE course_id = ? ORDER BY id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	list := []models.Resource{}
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(&res.ID, &res.CourseID, &res.Title, &res.Kind, &res.URL, &res.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

func (r ResourceRepository) Create(ctx context.Context, res models.Resource) (int64, error) {
	out, err := r.DB.ExecContext(ctx, `INSERT INTO resources (course_id, title, kind, url) VALUES (?, ?, ?, ?)`,
		res.CourseID, res.Title, res.Kind, res.URL)
	if err != nil {
		return 0, fmt.Errorf("insert resource: %w", err)
	}
	return out.LastInsertId()
}

func (r ResourceRepository) Delete(ctx context.Context, id int64) error {
	out, err := r.DB.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return expectOne(out, "resource")
}
