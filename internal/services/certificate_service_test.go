package services

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateNumberFormat(t *testing.T) {
	n := NewCertificateNumber(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^CERT-2025-[0-9A-F]{8}$`), n)
	assert.NotEqual(t, n, NewCertificateNumber(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCertificatePDF(t *testing.T) {
	owner := int64(5)
	loader := func(_ context.Context, id int64) (models.Certificate, error) {
		return models.Certificate{
			ID:                id,
			CertificateNumber: "CERT-2025-0A1B2C3D",
			UserID:            &owner,
			RecipientName:     "Jane Doe",
			Email:             "jane@example.com",
			CourseTitle:       "SEO Mastery",
			Instructor:        "Asha Rao",
			IssuedAt:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	svc := CertificateService{Loader: loader}

	pdf, filename, err := svc.PDF(context.Background(), 1, domain.RequestContext{UserID: 5, Email: "jane@example.com"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "CERTIFICATE_CERT-2025-0A1B2C3D_Jane_Doe.pdf", filename)

	_, _, err = svc.PDF(context.Background(), 1, domain.RequestContext{UserID: 6, Email: "other@example.com"})
	assert.True(t, domain.IsForbidden(err))

	_, _, err = svc.PDF(context.Background(), 1, domain.RequestContext{UserID: 1, IsAdmin: true})
	assert.NoError(t, err)
}

func TestCertificateOwnerByEmail(t *testing.T) {
	ct := models.Certificate{Email: "Jane@Example.com"}
	assert.True(t, canSeeCertificate(ct, domain.RequestContext{UserID: 9, Email: "jane@example.com"}))
	assert.False(t, canSeeCertificate(ct, domain.RequestContext{Email: "jane@example.com"}))

	owner := int64(12)
	linked := models.Certificate{Email: "jane@example.com", UserID: &owner}
	assert.True(t, canSeeCertificate(linked, domain.RequestContext{UserID: 12, Email: "other@example.com"}))
	assert.False(t, canSeeCertificate(linked, domain.RequestContext{UserID: 9, Email: "jane@example.com"}))
}
