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

type CertificateRepository struct {
	DB *sql.DB
}

const certificateColumns = `ct.id, ct.certificate_number, ct.user_id, ct.recipient_name, ct.email, ct.course_id,
	COALESCE(c.title,''), COALESCE(c.instructor,''), ct.issued_at`

const certificateFrom = ` FROM certificates ct LEFT JOIN courses c ON c.id = ct.course_id`

func scanCertificate(row interface{ Scan(...any) error }) (models.Certificate, error) {
	var (
		ct     models.Certificate
		userID sql.NullInt64
	)
	if err := row.Scan(&ct.ID, &ct.CertificateNumber, &userID, &ct.RecipientName, &ct.Email, &ct.CourseID,
		&ct.CourseTitle, &ct.Instructor, &ct.IssuedAt); err != nil {
		return models.Certificate{}, err
	}
	ct.UserID = intdb.Int64Ptr(userID)
	return ct, nil
}

func (r CertificateRepository) Create(ctx context.Context, ct models.Certificate) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO certificates (certificate_number, user_id, recipient_name, email, course_id, issued_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ct.CertificateNumber, intdb.NullInt64(ct.UserID), ct.RecipientName, ct.Email, ct.CourseID, ct.IssuedAt,
	)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "certificate", Msg: "certificate number already used", Err: err}
		}
		return 0, fmt.Errorf("insert certificate: %w", err)
	}
	return res.LastInsertId()
}

func (r CertificateRepository) GetByID(ctx context.Context, id int64) (models.Certificate, error) {
	ct, err := scanCertificate(r.DB.QueryRowContext(ctx, `SELECT `+certificateColumns+certificateFrom+` WHERE ct.id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Certificate{}, domain.NotFoundError{Resource: "certificate", Err: err}
	}
	return ct, err
}

func (r CertificateRepository) GetByNumber(ctx context.Context, number string) (models.Certificate, error) {
	ct, err := scanCertificate(r.DB.QueryRowContext(ctx, `SELECT `+certificateColumns+certificateFrom+` WHERE ct.certificate_number = ? LIMIT 1`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Certificate{}, domain.NotFoundError{Resource: "certificate", Err: err}
	}
	return ct, err
}

func (r CertificateRepository) ListForLearner(ctx context.Context, userID int64, email string) ([]models.Certificate, error) {
	return r.query(ctx, `SELECT `+certificateColumns+certificateFrom+` WHERE ct.user_id = ? OR (ct.user_id IS NULL AND ct.email = ?) ORDER BY ct.issued_at DESC`, userID, email)
}

func (r CertificateRepository) List(ctx context.Context, p domain.Pagination) ([]models.Certificate, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count certificates: %w", err)
	}
	list, err := r.query(ctx, `SELECT `+certificateColumns+certificateFrom+` ORDER BY ct.id DESC LIMIT ? OFFSET ?`, p.Limit, p.Offset())
	return list, total, err
}

func (r CertificateRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM certificates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	return expectOne(res, "certificate")
}

func (r CertificateRepository) query(ctx context.Context, q string, args ...any) ([]models.Certificate, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	list := []models.Certificate{}
	for rows.Next() {
		ct, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ct)
	}
	return list, rows.Err()
}
