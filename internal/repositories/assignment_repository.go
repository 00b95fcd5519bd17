package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "agencylms/internal/db"
	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
)

type AssignmentRepository struct {
	DB *sql.DB
}

const assignmentColumns = `id, course_id, title, COALESCE(description,''), due_date, max_score, created_at, updated_at`

func scanAssignment(row interface{ Scan(...any) error }) (models.Assignment, error) {
	var (
		a   models.Assignment
		due sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &due, &a.MaxScore, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return models.Assignment{}, err
	}
	if due.Valid {
		t := due.Time
		a.DueDate = &t
	}
	return a, nil
}

func (r AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE course_id = ? ORDER BY due_date IS NULL, due_date, id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	list := []models.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r AssignmentRepository) GetByID(ctx context.Context, id int64) (models.Assignment, error) {
	a, err := scanAssignment(r.DB.QueryRowContext(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Assignment{}, domain.NotFoundError{Resource: "assignment", Err: err}
	}
	return a, err
}

func (r AssignmentRepository) Create(ctx context.Context, a models.Assignment) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO assignments (course_id, title, description, due_date, max_score)
		VALUES (?, ?, ?, ?, ?)`,
		a.CourseID, a.Title, intdb.NullIfEmpty(a.Description), a.DueDate, a.MaxScore,
	)
	if err != nil {
		return 0, fmt.Errorf("insert assignment: %w", err)
	}
	return res.LastInsertId()
}

func (r AssignmentRepository) Update(ctx context.Context, a models.Assignment) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE assignments SET course_id = ?, title = ?, description = ?, due_date = ?, max_score = ?
		WHERE id = ?`,
		a.CourseID, a.Title, intdb.NullIfEmpty(a.Description), a.DueDate, a.MaxScore, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return expectOne(res, "assignment")
}

func (r AssignmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return expectOne(res, "assignment")
}
