package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "agencylms/internal/db"
	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
)

type EnrollmentRepository struct {
	DB *sql.DB
}

const requestColumns = `r.id, r.course_id, COALESCE(c.title,''), r.user_id, r.full_name, r.email, r.phone, r.address,
	r.city, r.state, r.pincode, r.payment_method, r.transaction_id, r.screenshot_key, r.screenshot_type,
	r.status, COALESCE(r.rejection_reason,''), r.reviewed_by, r.reviewed_at, r.created_at`

const requestFrom = ` FROM enrollment_requests r LEFT JOIN courses c ON c.id = r.course_id`

func scanRequest(row interface{ Scan(...any) error }) (models.EnrollmentRequest, error) {
	var (
		req        models.EnrollmentRequest
		userID     sql.NullInt64
		reviewedBy sql.NullInt64
		reviewedAt sql.NullTime
	)
	if err := row.Scan(&req.ID, &req.CourseID, &req.CourseTitle, &userID, &req.FullName, &req.Email, &req.Phone, &req.Address,
		&req.City, &req.State, &req.Pincode, &req.PaymentMethod, &req.TransactionID, &req.ScreenshotKey, &req.ScreenshotType,
		&req.Status, &req.RejectionReason, &reviewedBy, &reviewedAt, &req.CreatedAt); err != nil {
		return models.EnrollmentRequest{}, err
	}
	req.UserID = intdb.Int64Ptr(userID)
	req.ReviewedBy = intdb.Int64Ptr(reviewedBy)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		req.ReviewedAt = &t
	}
	return req, nil
}

// CreateRequest stores a checkout submission as pending.
func (r EnrollmentRepository) CreateRequest(ctx context.Context, req models.EnrollmentRequest) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO enrollment_requests
			(course_id, user_id, full_name, email, phone, address, city, state, pincode,
			 payment_method, transaction_id, screenshot_key, screenshot_type, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.CourseID, intdb.NullInt64(req.UserID), req.FullName, req.Email, req.Phone, req.Address, req.City, req.State, req.Pincode,
		req.PaymentMethod, req.TransactionID, req.ScreenshotKey, req.ScreenshotType, models.RequestStatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("insert enrollment request: %w", err)
	}
	return res.LastInsertId()
}

func (r EnrollmentRepository) GetRequest(ctx context.Context, id int64) (models.EnrollmentRequest, error) {
	req, err := scanRequest(r.DB.QueryRowContext(ctx, `SELECT `+requestColumns+requestFrom+` WHERE r.id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EnrollmentRequest{}, domain.NotFoundError{Resource: "enrollment request", Err: err}
	}
	return req, err
}

func (r EnrollmentRepository) ListRequests(ctx context.Context, f models.PaymentFilter, p domain.Pagination) ([]models.EnrollmentRequest, int, error) {
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "r.status = ?")
		args = append(args, s)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + q + "%"
		where = append(where, "(r.full_name LIKE ? OR r.email LIKE ? OR r.transaction_id LIKE ?)")
		args = append(args, like, like, like)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollment_requests r`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count enrollment requests: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+requestColumns+requestFrom+clause+` ORDER BY r.id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list enrollment requests: %w", err)
	}
	defer rows.Close()

	list := []models.EnrollmentRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, req)
	}
	return list, total, rows.Err()
}

// Approve flips a pending request to approved and grants the enrollment in one transaction.
func (r EnrollmentRepository) Approve(ctx context.Context, req models.EnrollmentRequest, reviewerID int64, at time.Time) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	userID := req.UserID
	if userID == nil {
		userID, err = accountByEmail(ctx, tx, req.Email)
		if err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE enrollment_requests
		SET status = ?, reviewed_by = ?, reviewed_at = ?, user_id = COALESCE(user_id, ?)
		WHERE id = ? AND status = ?`,
		models.RequestStatusApproved, reviewerID, at, intdb.NullInt64(userID), req.ID, models.RequestStatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("approve request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ConflictError{Resource: "enrollment request", Msg: "request was already reviewed"}
	}

	res, err = tx.ExecContext(ctx, `
		INSERT INTO enrollments (user_id, email, course_id, request_id, status, progress, enrolled_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		intdb.NullInt64(userID), req.Email, req.CourseID, req.ID, models.EnrollmentStatusActive, at,
	)
	if err != nil {
		return 0, fmt.Errorf("insert enrollment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// accountByEmail links an anonymous checkout to the account that already owns its email,
// so later access checks go through user_id instead of the address.
func accountByEmail(ctx context.Context, q intdb.QueryRower, email string) (*int64, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ? LIMIT 1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &id, nil
}

func (r EnrollmentRepository) Reject(ctx context.Context, id, reviewerID int64, reason string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE enrollment_requests
		SET status = ?, rejection_reason = ?, reviewed_by = ?, reviewed_at = ?
		WHERE id = ? AND status = ?`,
		models.RequestStatusRejected, reason, reviewerID, at, id, models.RequestStatusPending,
	)
	if err != nil {
		return fmt.Errorf("reject request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "enrollment request", Msg: "request was already reviewed"}
	}
	return nil
}

const enrollmentColumns = `e.id, e.user_id, e.email, e.course_id, COALESCE(c.title,''), COALESCE(c.instructor,''),
	e.request_id, e.status, e.progress, e.enrolled_at`

func scanEnrollment(row interface{ Scan(...any) error }) (models.Enrollment, error) {
	var (
		e      models.Enrollment
		userID sql.NullInt64
	)
	if err := row.Scan(&e.ID, &userID, &e.Email, &e.CourseID, &e.CourseTitle, &e.Instructor,
		&e.RequestID, &e.Status, &e.Progress, &e.EnrolledAt); err != nil {
		return models.Enrollment{}, err
	}
	e.UserID = intdb.Int64Ptr(userID)
	return e, nil
}

// ListForLearner matches by user id, or by email for enrollments made before the learner registered.
func (r EnrollmentRepository) ListForLearner(ctx context.Context, userID int64, email string) ([]models.Enrollment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+enrollmentColumns+`
		FROM enrollments e LEFT JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ? OR (e.user_id IS NULL AND e.email = ?)
		ORDER BY e.enrolled_at DESC`, userID, email)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	list := []models.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r EnrollmentRepository) List(ctx context.Context, p domain.Pagination) ([]models.Enrollment, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+enrollmentColumns+`
		FROM enrollments e LEFT JOIN courses c ON c.id = e.course_id
		ORDER BY e.id DESC LIMIT ? OFFSET ?`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	list := []models.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// IsEnrolled is used to gate course material for learners.
func (r EnrollmentRepository) IsEnrolled(ctx context.Context, courseID, userID int64, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM enrollments
		WHERE course_id = ? AND (user_id = ? OR (user_id IS NULL AND email = ?))`, courseID, userID, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return n > 0, nil
}
