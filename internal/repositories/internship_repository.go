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

type InternshipRepository struct {
	DB *sql.DB
}

const internshipColumns = `id, title, COALESCE(department,''), COALESCE(location,''), COALESCE(mode,''), COALESCE(duration,''),
	COALESCE(stipend,''), COALESCE(description,''), is_active, deadline, created_at, updated_at`

func scanInternship(row interface{ Scan(...any) error }) (models.Internship, error) {
	var (
		in       models.Internship
		deadline sql.NullTime
	)
	if err := row.Scan(&in.ID, &in.Title, &in.Department, &in.Location, &in.Mode, &in.Duration,
		&in.Stipend, &in.Description, &in.IsActive, &deadline, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return models.Internship{}, err
	}
	if deadline.Valid {
		t := deadline.Time
		in.Deadline = &t
	}
	return in, nil
}

func (r InternshipRepository) List(ctx context.Context, activeOnly bool) ([]models.Internship, error) {
	q := `SELECT ` + internshipColumns + ` FROM internships`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	rows, err := r.DB.QueryContext(ctx, q+` ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	defer rows.Close()

	list := []models.Internship{}
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

func (r InternshipRepository) GetByID(ctx context.Context, id int64) (models.Internship, error) {
	in, err := scanInternship(r.DB.QueryRowContext(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Internship{}, domain.NotFoundError{Resource: "internship", Err: err}
	}
	return in, err
}

func (r InternshipRepository) Create(ctx context.Context, in models.Internship) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO internships (title, department, location, mode, duration, stipend, description, is_active, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, intdb.NullIfEmpty(in.Department), intdb.NullIfEmpty(in.Location), intdb.NullIfEmpty(in.Mode),
		intdb.NullIfEmpty(in.Duration), intdb.NullIfEmpty(in.Stipend), intdb.NullIfEmpty(in.Description), in.IsActive, in.Deadline,
	)
	if err != nil {
		return 0, fmt.Errorf("insert internship: %w", err)
	}
	return res.LastInsertId()
}

func (r InternshipRepository) Update(ctx context.Context, in models.Internship) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE internships
		SET title = ?, department = ?, location = ?, mode = ?, duration = ?, stipend = ?, description = ?, is_active = ?, deadline = ?
		WHERE id = ?`,
		in.Title, intdb.NullIfEmpty(in.Department), intdb.NullIfEmpty(in.Location), intdb.NullIfEmpty(in.Mode),
		intdb.NullIfEmpty(in.Duration), intdb.NullIfEmpty(in.Stipend), intdb.NullIfEmpty(in.Description), in.IsActive, in.Deadline, in.ID,
	)
	if err != nil {
		return fmt.Errorf("update internship: %w", err)
	}
	return expectOne(res, "internship")
}

// Deactivate is the soft delete: listings disappear from the public site but stay in the table.
func (r InternshipRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE internships SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate internship: %w", err)
	}
	return expectOne(res, "internship")
}
