package services

import (
	"bytes"
	"context"
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
	"agencylms/internal/validation"

	"go.uber.org/zap"
)

// EnrollmentSubmission is the decoded multipart checkout payload.
type EnrollmentSubmission struct {
	CourseID       int64
	UserID         *int64
	Personal       validation.PersonalDetails
	PaymentMethod  string
	TransactionID  string
	Screenshot     io.Reader
	ScreenshotType string
	ScreenshotSize int64
}

// EnrollmentService records checkout submissions as pending payment reviews.
type EnrollmentService struct {
	Courses  repositories.CourseRepository
	Requests repositories.EnrollmentRepository
	Store    storage.ProofStore
	Events   events.Publisher
	Mailer   notify.Mailer
	Now      func() time.Time
}

func (s EnrollmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Validate runs the same two step rules the checkout applies before it sends anything.
func (in EnrollmentSubmission) Validate() validation.Errors {
	errs := validation.ValidatePersonal(in.Personal)
	for k, v := range validation.ValidatePayment(validation.PaymentProof{
		HasScreenshot: in.Screenshot != nil,
		TransactionID: in.TransactionID,
	}) {
		errs.Add(k, v)
	}
	if in.Screenshot != nil {
		if msg := validation.CheckScreenshot(in.ScreenshotType, in.ScreenshotSize); msg != "" {
			errs.Add(validation.FieldPaymentScreenshot, msg)
		}
	}
	if in.CourseID <= 0 {
		errs.Add(validation.FieldCourseID, "Course is required")
	}
	return errs
}

func (s EnrollmentService) Submit(ctx context.Context, in EnrollmentSubmission) (int64, error) {
	if err := in.Validate().Err(); err != nil {
		return 0, err
	}

	course, err := s.Courses.GetByID(ctx, in.CourseID)
	if err != nil {
		return 0, err
	}

	// Screenshots are small; buffering keeps the body seekable for S3 signing.
	data, err := io.ReadAll(io.LimitReader(in.Screenshot, validation.MaxScreenshotBytes+1))
	if err != nil {
		return 0, domain.ValidationError{Field: validation.FieldPaymentScreenshot, Msg: "Could not read the uploaded file", Err: err}
	}
	if int64(len(data)) > validation.MaxScreenshotBytes {
		return 0, domain.ValidationError{Field: validation.FieldPaymentScreenshot, Msg: "File size should be less than 5MB"}
	}
	contentType, ok := validation.SniffImage(data)
	if !ok {
		return 0, domain.ValidationError{Field: validation.FieldPaymentScreenshot, Msg: "Please upload an image file"}
	}

	now := s.now()
	key := storage.NewProofKey(now, contentType)
	if err := s.Store.Save(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return 0, domain.InternalError{Msg: "could not store payment screenshot", Err: err}
	}

	p := in.Personal
	req := models.EnrollmentRequest{
		CourseID:       course.ID,
		UserID:         in.UserID,
		FullName:       utils.NormalizeSpace(p.FullName),
		Email:          strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:          utils.DigitsOnly(p.Phone),
		Address:        strings.TrimSpace(p.Address),
		City:           strings.TrimSpace(p.City),
		State:          strings.TrimSpace(p.State),
		Pincode:        strings.TrimSpace(p.Pincode),
		PaymentMethod:  strings.TrimSpace(in.PaymentMethod),
		TransactionID:  strings.TrimSpace(in.TransactionID),
		ScreenshotKey:  key,
		ScreenshotType: contentType,
	}
	id, err := s.Requests.CreateRequest(ctx, req)
	if err != nil {
		if derr := s.Store.Delete(ctx, key); derr != nil {
			utils.LogWarn(ctx, "enrollment", "submit", "orphaned screenshot not removed", derr)
		}
		return 0, err
	}
	utils.LogEvent(ctx, "enrollment", "submit", "enrollment request stored",
		zap.Int64("request_id", id), zap.Int64("course_id", course.ID))

	publish(ctx, s.Events, events.EnrollmentEvent{
		Type:       events.EnrollmentSubmitted,
		RequestID:  id,
		CourseID:   course.ID,
		Email:      req.Email,
		FullName:   req.FullName,
		OccurredAt: now,
	})
	send(ctx, s.Mailer, notify.EnrollmentReceived(req.FullName, req.Email, course.Title))
	return id, nil
}

// publish and send are best effort: the request is already stored.
func publish(ctx context.Context, p events.Publisher, ev events.EnrollmentEvent) {
	if p == nil {
		return
	}
	if err := p.PublishEnrollment(ctx, ev); err != nil {
		utils.LogWarn(ctx, "events", ev.Type, "publish failed", err)
	}
}

func send(ctx context.Context, m notify.Mailer, msg notify.Message) {
	if m == nil || msg.ToEmail == "" {
		return
	}
	if err := m.Send(ctx, msg); err != nil {
		utils.LogWarn(ctx, "notify", "send", "email failed", err)
	}
}
