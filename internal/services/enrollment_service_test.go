package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agencylms/internal/domain"
	"agencylms/internal/events"
	"agencylms/internal/repositories"
	"agencylms/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission(file []byte) EnrollmentSubmission {
	return EnrollmentSubmission{
		CourseID: 3,
		Personal: validation.PersonalDetails{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "98765 43210",
			Address:  "12 MG Road",
			City:     "Pune",
			State:    "Maharashtra",
			Pincode:  "411001",
		},
		PaymentMethod:  "upi",
		TransactionID:  "TXN123",
		Screenshot:     bytes.NewReader(file),
		ScreenshotType: "image/png",
		ScreenshotSize: int64(len(file)),
	}
}

type enrollmentFixture struct {
	svc    EnrollmentService
	mock   sqlmock.Sqlmock
	store  *memStore
	pub    *recordingPublisher
	mailer *recordingMailer
}

func newEnrollmentFixture(t *testing.T) enrollmentFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	f := enrollmentFixture{mock: mock, store: newMemStore(), pub: &recordingPublisher{}, mailer: &recordingMailer{}}
	f.svc = EnrollmentService{
		Courses:  repositories.CourseRepository{DB: db},
		Requests: repositories.EnrollmentRepository{DB: db},
		Store:    f.store,
		Events:   f.pub,
		Mailer:   f.mailer,
		Now:      func() time.Time { return time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestSubmitRejectsInvalidPayloadBeforeAnyIO(t *testing.T) {
	f := newEnrollmentFixture(t)
	in := validSubmission(pngHeader)
	in.Personal.Pincode = "4110"
	in.TransactionID = " "

	_, err := f.svc.Submit(context.Background(), in)
	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Pincode should be 6 digits", verr.Fields[validation.FieldPincode])
	assert.Equal(t, "Transaction ID is required", verr.Fields[validation.FieldTransactionID])
	assert.Empty(t, f.store.objects)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmitRejectsDisguisedFile(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.mock.ExpectQuery("FROM courses WHERE id").WithArgs(int64(3)).WillReturnRows(courseRow(3, "SEO Mastery", true))

	in := validSubmission([]byte("%PDF-1.4 not really an image"))
	_, err := f.svc.Submit(context.Background(), in)

	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validation.FieldPaymentScreenshot, verr.Field)
	assert.Empty(t, f.store.objects)
}

func TestSubmitStoresProofAndPendingRequest(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.mock.ExpectQuery("FROM courses WHERE id").WithArgs(int64(3)).WillReturnRows(courseRow(3, "SEO Mastery", true))
	f.mock.ExpectExec("INSERT INTO enrollment_requests").
		WithArgs(int64(3), nil, "Jane Doe", "jane@example.com", "9876543210", "12 MG Road", "Pune", "Maharashtra", "411001",
			"upi", "TXN123", sqlmock.AnyArg(), "image/png", "pending").
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := f.svc.Submit(context.Background(), validSubmission(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	require.Len(t, f.store.objects, 1)
	for key, data := range f.store.objects {
		assert.True(t, strings.HasPrefix(key, "payment-proofs/2025/01/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
		assert.Equal(t, pngHeader, data)
	}
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.EnrollmentSubmitted, f.pub.events[0].Type)
	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0].Subject, "SEO Mastery")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmitRemovesProofWhenInsertFails(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.mock.ExpectQuery("FROM courses WHERE id").WillReturnRows(courseRow(3, "SEO Mastery", true))
	f.mock.ExpectExec("INSERT INTO enrollment_requests").WillReturnError(errors.New("db down"))

	_, err := f.svc.Submit(context.Background(), validSubmission(pngHeader))
	require.Error(t, err)
	assert.Empty(t, f.store.objects)
	assert.Empty(t, f.pub.events)
	assert.Empty(t, f.mailer.sent)
}

func TestSubmitUnknownCourse(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.mock.ExpectQuery("FROM courses WHERE id").WillReturnRows(sqlmock.NewRows(courseCols))

	_, err := f.svc.Submit(context.Background(), validSubmission(pngHeader))
	assert.True(t, domain.IsNotFound(err))
}
