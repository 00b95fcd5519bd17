package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intdb "agencylms/internal/db"
	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
)

type CourseRepository struct {
	DB *sql.DB
}

const courseColumns = `id, title, slug, COALESCE(description,''), COALESCE(category,''), COALESCE(instructor,''),
	price, COALESCE(duration,''), COALESCE(level,''), COALESCE(image_url,''), is_published, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Category, &c.Instructor,
		&c.Price, &c.Duration, &c.Level, &c.ImageURL, &c.IsPublished, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns one page of the catalog and the total matching rows.
func (r CourseRepository) List(ctx context.Context, f models.CourseFilter, p domain.Pagination) ([]models.Course, int, error) {
	where := []string{}
	args := []any{}
	if !f.IncludeHidden {
		where = append(where, "is_published = 1")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + q + "%"
		where = append(where, "(title LIKE ? OR description LIKE ? OR instructor LIKE ?)")
		args = append(args, like, like, like)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		where = append(where, "category = ?")
		args = append(args, c)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses`+clause+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	list := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r CourseRepository) GetByID(ctx context.Context, id int64) (models.Course, error) {
	c, err := scanCourse(r.DB.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, domain.NotFoundError{Resource: "course", Err: err}
	}
	return c, err
}

func (r CourseRepository) Create(ctx context.Context, c models.Course) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO courses (title, slug, description, category, instructor, price, duration, level, image_url, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Slug, intdb.NullIfEmpty(c.Description), intdb.NullIfEmpty(c.Category), intdb.NullIfEmpty(c.Instructor),
		c.Price, intdb.NullIfEmpty(c.Duration), intdb.NullIfEmpty(c.Level), intdb.NullIfEmpty(c.ImageURL), c.IsPublished,
	)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "course", Msg: "a course with this title already exists", Err: err}
		}
		return 0, fmt.Errorf("insert course: %w", err)
	}
	return res.LastInsertId()
}

func (r CourseRepository) Update(ctx context.Context, c models.Course) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE courses
		SET title = ?, slug = ?, description = ?, category = ?, instructor = ?, price = ?,
		    duration = ?, level = ?, image_url = ?, is_published = ?
		WHERE id = ?`,
		c.Title, c.Slug, intdb.NullIfEmpty(c.Description), intdb.NullIfEmpty(c.Category), intdb.NullIfEmpty(c.Instructor),
		c.Price, intdb.NullIfEmpty(c.Duration), intdb.NullIfEmpty(c.Level), intdb.NullIfEmpty(c.ImageURL), c.IsPublished, c.ID,
	)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "course", Msg: "a course with this title already exists", Err: err}
		}
		return fmt.Errorf("update course: %w", err)
	}
	return expectOne(res, "course")
}

func (r CourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return expectOne(res, "course")
}
