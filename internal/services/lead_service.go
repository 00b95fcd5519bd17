package services

import (
	"context"
	"fmt"
	"strings"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/notify"
	"agencylms/internal/repositories"
	"agencylms/internal/utils"
	"agencylms/internal/validation"

	"go.uber.org/zap"
)

// ContactService stores contact form messages and forwards them to the agency inbox.
type ContactService struct {
	Repo   repositories.ContactRepository
	Mailer notify.Mailer
	Inbox  string
}

func (s ContactService) Submit(ctx context.Context, in validation.ContactInput) (int64, error) {
	if err := validation.ValidateContact(in).Err(); err != nil {
		return 0, err
	}
	m := models.ContactMessage{
		FirstName: utils.NormalizeSpace(in.FirstName),
		LastName:  utils.NormalizeSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Company:   strings.TrimSpace(in.Company),
		Message:   strings.TrimSpace(in.Message),
	}
	id, err := s.Repo.Create(ctx, m)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(ctx, "contact", "submit", "contact message stored", zap.Int64("contact_id", id))

	if s.Inbox != "" {
		send(ctx, s.Mailer, notify.AgencyAlert(s.Inbox, "New contact message from "+m.FirstName+" "+m.LastName,
			"From: "+m.FirstName+" "+m.LastName+" <"+m.Email+">",
			"Phone: "+safe(m.Phone, "-"),
			"Company: "+safe(m.Company, "-"),
			"",
			m.Message,
		))
	}
	return id, nil
}

func (s ContactService) List(ctx context.Context, page, limit int) ([]models.ContactMessage, domain.Pagination, error) {
	p := domain.NewPagination(page, limit, 20, 100)
	list, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, p, err
	}
	return list, p.WithTotal(total), nil
}

// ServiceRequestService handles "request a service" leads.
type ServiceRequestService struct {
	Repo   repositories.ServiceRequestRepository
	Mailer notify.Mailer
	Inbox  string
}

type ServiceRequestInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
}

func (s ServiceRequestService) Submit(ctx context.Context, in ServiceRequestInput) (int64, error) {
	errs := validation.ValidateServiceRequest(validation.ServiceRequestInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Message: in.Message,
	})
	if err := errs.Err(); err != nil {
		return 0, err
	}
	r := models.ServiceRequest{
		Name:    utils.NormalizeSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Service: strings.TrimSpace(in.Service),
		Budget:  strings.TrimSpace(in.Budget),
		Message: strings.TrimSpace(in.Message),
	}
	id, err := s.Repo.Create(ctx, r)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(ctx, "service_request", "submit", "service request stored",
		zap.Int64("service_request_id", id), zap.String("service", r.Service))

	if s.Inbox != "" {
		send(ctx, s.Mailer, notify.AgencyAlert(s.Inbox, fmt.Sprintf("New %s enquiry from %s", r.Service, r.Name),
			"From: "+r.Name+" <"+r.Email+">",
			"Phone: "+safe(r.Phone, "-"),
			"Company: "+safe(r.Company, "-"),
			"Budget: "+safe(r.Budget, "-"),
			"",
			r.Message,
		))
	}
	return id, nil
}

func (s ServiceRequestService) List(ctx context.Context, status string, page, limit int) ([]models.ServiceRequest, domain.Pagination, error) {
	if status != "" && !validServiceStatus(status) {
		return nil, domain.Pagination{}, domain.ValidationError{Field: "status", Msg: "must be new, in_progress or closed"}
	}
	p := domain.NewPagination(page, limit, 20, 100)
	list, total, err := s.Repo.List(ctx, status, p)
	if err != nil {
		return nil, p, err
	}
	return list, p.WithTotal(total), nil
}

func (s ServiceRequestService) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if !validServiceStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "must be new, in_progress or closed"}
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	utils.LogEvent(ctx, "service_request", "status", "status changed",
		zap.Int64("service_request_id", id), zap.String("status", status))
	return nil
}

func validServiceStatus(s string) bool {
	switch s {
	case models.ServiceRequestNew, models.ServiceRequestInProgress, models.ServiceRequestClosed:
		return true
	}
	return false
}
