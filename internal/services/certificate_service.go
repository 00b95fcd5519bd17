package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/repositories"
	"agencylms/internal/utils"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

const issueAttempts = 3

// CertificateService issues completion certificates and renders them as PDF.
type CertificateService struct {
	Certs   repositories.CertificateRepository
	Courses repositories.CourseRepository
	Issuer  string
	Now     func() time.Time
	// Loader replaces the database lookup in PDF rendering.
	Loader func(ctx context.Context, id int64) (models.Certificate, error)
}

type IssueCertificateInput struct {
	UserID        *int64 `json:"userId"`
	RecipientName string `json:"recipientName" binding:"required,min=2,max=120"`
	Email         string `json:"email" binding:"required,email"`
	CourseID      int64  `json:"courseId" binding:"required,gt=0"`
}

func (s CertificateService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// NewCertificateNumber returns CERT-<year>-<8 upper hex chars>.
func NewCertificateNumber(at time.Time) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("CERT-%d-%s", at.Year(), strings.ToUpper(raw[:8]))
}

func (s CertificateService) Issue(ctx context.Context, in IssueCertificateInput) (models.Certificate, error) {
	course, err := s.Courses.GetByID(ctx, in.CourseID)
	if err != nil {
		return models.Certificate{}, err
	}

	at := s.now()
	ct := models.Certificate{
		UserID:        in.UserID,
		RecipientName: utils.NormalizeSpace(in.RecipientName),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		CourseID:      course.ID,
		CourseTitle:   course.Title,
		Instructor:    course.Instructor,
		IssuedAt:      at,
	}
	for attempt := 1; ; attempt++ {
		ct.CertificateNumber = NewCertificateNumber(at)
		id, err := s.Certs.Create(ctx, ct)
		if err == nil {
			ct.ID = id
			break
		}
		if !domain.IsConflict(err) || attempt == issueAttempts {
			return models.Certificate{}, err
		}
	}
	utils.LogEvent(ctx, "certificate", "issue", "certificate issued",
		zap.Int64("certificate_id", ct.ID), zap.String("number", ct.CertificateNumber))
	return ct, nil
}

func (s CertificateService) ListMine(ctx context.Context, rc domain.RequestContext) ([]models.Certificate, error) {
	if !rc.Authenticated() {
		return nil, domain.UnauthorizedError{}
	}
	return s.Certs.ListForLearner(ctx, int64(rc.UserID), rc.Email)
}

func (s CertificateService) List(ctx context.Context, page, limit int) ([]models.Certificate, domain.Pagination, error) {
	p := domain.NewPagination(page, limit, 20, 100)
	list, total, err := s.Certs.List(ctx, p)
	if err != nil {
		return nil, p, err
	}
	return list, p.WithTotal(total), nil
}

func (s CertificateService) Verify(ctx context.Context, number string) (models.Certificate, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return models.Certificate{}, domain.ValidationError{Field: "number", Msg: "certificate number is required"}
	}
	return s.Certs.GetByNumber(ctx, number)
}

func (s CertificateService) Delete(ctx context.Context, id int64) error {
	return s.Certs.Delete(ctx, id)
}

// PDF renders a certificate the caller owns, or any certificate for admins.
func (s CertificateService) PDF(ctx context.Context, id int64, rc domain.RequestContext) ([]byte, string, error) {
	ct, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !canSeeCertificate(ct, rc) {
		return nil, "", domain.ForbiddenError{Msg: "this certificate belongs to another learner"}
	}
	utils.LogEvent(ctx, "certificate", "pdf", "certificate rendered", zap.Int64("certificate_id", id))
	return buildCertificatePDF(ct, safe(s.Issuer, "Digital Marketing Academy"))
}

func (s CertificateService) load(ctx context.Context, id int64) (models.Certificate, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return s.Certs.GetByID(ctx, id)
}

func canSeeCertificate(ct models.Certificate, rc domain.RequestContext) bool {
	if rc.IsAdmin {
		return true
	}
	if !rc.Authenticated() {
		return false
	}
	if ct.UserID != nil {
		return *ct.UserID == int64(rc.UserID)
	}
	return rc.Email != "" && strings.EqualFold(ct.Email, rc.Email)
}

func buildCertificatePDF(ct models.Certificate, issuer string) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetY(35)
	pdf.CellFormat(0, 14, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(8)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, safe(ct.RecipientName, "-"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, safe(ct.CourseTitle, "-"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Ln(12)
	lines := []string{
		"Instructor : " + safe(ct.Instructor, "-"),
		"Issued on  : " + utils.FormatLongDate(ct.IssuedAt),
		"Certificate: " + ct.CertificateNumber,
		"Issued by  : " + issuer,
	}
	for _, l := range lines {
		pdf.CellFormat(0, 7, l, "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("CERTIFICATE_%s_%s.pdf", utils.SafeFilenamePart(ct.CertificateNumber), utils.SafeFilenamePart(ct.RecipientName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
