package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/events"
	"agencylms/internal/notify"
	"agencylms/internal/repositories"
	"agencylms/internal/storage"
	"agencylms/internal/utils"

	"go.uber.org/zap"
)

// PaymentService is the admin side of payment verification.
type PaymentService struct {
	Requests repositories.EnrollmentRepository
	Store    storage.ProofStore
	Events   events.Publisher
	Mailer   notify.Mailer
	Now      func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s PaymentService) List(ctx context.Context, f models.PaymentFilter) ([]models.EnrollmentRequest, domain.Pagination, error) {
	switch f.Status {
	case "", models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
	default:
		return nil, domain.Pagination{}, domain.ValidationError{Field: "status", Msg: "must be pending, approved or rejected"}
	}
	p := domain.NewPagination(f.Page, f.Limit, 20, 100)
	list, total, err := s.Requests.ListRequests(ctx, f, p)
	if err != nil {
		return nil, p, err
	}
	return list, p.WithTotal(total), nil
}

func (s PaymentService) Get(ctx context.Context, id int64) (models.EnrollmentRequest, error) {
	return s.Requests.GetRequest(ctx, id)
}

// Screenshot opens the stored proof. The caller closes the reader.
func (s PaymentService) Screenshot(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	req, err := s.Requests.GetRequest(ctx, id)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.Store.Open(ctx, req.ScreenshotKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", domain.NotFoundError{Resource: "payment screenshot", Err: err}
		}
		return nil, "", domain.InternalError{Msg: "could not open payment screenshot", Err: err}
	}
	return rc, req.ScreenshotType, nil
}

func (s PaymentService) Approve(ctx context.Context, id, reviewerID int64) (int64, error) {
	req, err := s.Requests.GetRequest(ctx, id)
	if err != nil {
		return 0, err
	}
	if req.Status != models.RequestStatusPending {
		return 0, domain.ConflictError{Resource: "enrollment request", Msg: "request was already reviewed"}
	}

	at := s.now()
	enrollmentID, err := s.Requests.Approve(ctx, req, reviewerID, at)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(ctx, "payment", "approve", "payment approved",
		zap.Int64("request_id", id), zap.Int64("enrollment_id", enrollmentID), zap.Int64("reviewer_id", reviewerID))

	publish(ctx, s.Events, events.EnrollmentEvent{
		Type:       events.EnrollmentApproved,
		RequestID:  id,
		CourseID:   req.CourseID,
		Email:      req.Email,
		FullName:   req.FullName,
		OccurredAt: at,
	})
	send(ctx, s.Mailer, notify.EnrollmentApproved(req.FullName, req.Email, courseLabel(req)))
	return enrollmentID, nil
}

func (s PaymentService) Reject(ctx context.Context, id, reviewerID int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ValidationError{Field: "reason", Msg: "a rejection reason is required"}
	}
	req, err := s.Requests.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if req.Status != models.RequestStatusPending {
		return domain.ConflictError{Resource: "enrollment request", Msg: "request was already reviewed"}
	}

	at := s.now()
	if err := s.Requests.Reject(ctx, id, reviewerID, reason, at); err != nil {
		return err
	}
	utils.LogEvent(ctx, "payment", "reject", "payment rejected",
		zap.Int64("request_id", id), zap.Int64("reviewer_id", reviewerID))

	publish(ctx, s.Events, events.EnrollmentEvent{
		Type:       events.EnrollmentRejected,
		RequestID:  id,
		CourseID:   req.CourseID,
		Email:      req.Email,
		FullName:   req.FullName,
		Reason:     reason,
		OccurredAt: at,
	})
	send(ctx, s.Mailer, notify.EnrollmentRejected(req.FullName, req.Email, courseLabel(req), reason))
	return nil
}

func courseLabel(req models.EnrollmentRequest) string {
	if t := strings.TrimSpace(req.CourseTitle); t != "" {
		return t
	}
	return "your course"
}
