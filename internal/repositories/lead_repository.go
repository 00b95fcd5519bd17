package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "agencylms/internal/db"
	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
)

// ContactRepository stores messages from the public contact form.
type ContactRepository struct {
	DB *sql.DB
}

func (r ContactRepository) Create(ctx context.Context, m models.ContactMessage) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO contact_messages (first_name, last_name, email, phone, company, message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.FirstName, m.LastName, m.Email, intdb.NullIfEmpty(m.Phone), intdb.NullIfEmpty(m.Company), m.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact message: %w", err)
	}
	return res.LastInsertId()
}

func (r ContactRepository) List(ctx context.Context, p domain.Pagination) ([]models.ContactMessage, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, COALESCE(phone,''), COALESCE(company,''), message, created_at
		FROM contact_messages ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	list := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Company, &m.Message, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ServiceRequestRepository stores "request a service" leads.
type ServiceRequestRepository struct {
	DB *sql.DB
}

func (r ServiceRequestRepository) Create(ctx context.Context, s models.ServiceRequest) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO service_requests (name, email, phone, company, service, budget, message, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Email, intdb.NullIfEmpty(s.Phone), intdb.NullIfEmpty(s.Company), s.Service,
		intdb.NullIfEmpty(s.Budget), s.Message, models.ServiceRequestNew,
	)
	if err != nil {
		return 0, fmt.Errorf("insert service request: %w", err)
	}
	return res.LastInsertId()
}

func (r ServiceRequestRepository) List(ctx context.Context, status string, p domain.Pagination) ([]models.ServiceRequest, int, error) {
	clause := ""
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		clause = " WHERE status = ?"
		args = append(args, s)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_requests`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count service requests: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone,''), COALESCE(company,''), service, COALESCE(budget,''), message, status, created_at, updated_at
		FROM service_requests`+clause+` ORDER BY id DESC LIMIT ? OFFSET ?`, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list service requests: %w", err)
	}
	defer rows.Close()

	list := []models.ServiceRequest{}
	for rows.Next() {
		var s models.ServiceRequest
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Company, &s.Service, &s.Budget, &s.Message, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r ServiceRequestRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE service_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update service request: %w", err)
	}
	return expectOne(res, "service request")
}
