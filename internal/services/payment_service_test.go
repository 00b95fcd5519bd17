package services

import (
	"context"
	"io"
	"testing"
	"time"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/events"
	"agencylms/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc    PaymentService
	mock   sqlmock.Sqlmock
	store  *memStore
	pub    *recordingPublisher
	mailer *recordingMailer
}

func newPaymentFixture(t *testing.T) paymentFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	f := paymentFixture{mock: mock, store: newMemStore(), pub: &recordingPublisher{}, mailer: &recordingMailer{}}
	f.svc = PaymentService{
		Requests: repositories.EnrollmentRepository{DB: db},
		Store:    f.store,
		Events:   f.pub,
		Mailer:   f.mailer,
		Now:      func() time.Time { return time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestApproveGrantsEnrollment(t *testing.T) {
	f := newPaymentFixture(t)
	f.mock.ExpectQuery("FROM enrollment_requests r").WithArgs(int64(7)).WillReturnRows(requestRow(7, models.RequestStatusPending))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT id FROM users WHERE email").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	f.mock.ExpectExec("UPDATE enrollment_requests").WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("INSERT INTO enrollments").WillReturnResult(sqlmock.NewResult(99, 1))
	f.mock.ExpectCommit()

	id, err := f.svc.Approve(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.EnrollmentApproved, f.pub.events[0].Type)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "jane@example.com", f.mailer.sent[0].ToEmail)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestApproveAlreadyReviewed(t *testing.T) {
	f := newPaymentFixture(t)
	f.mock.ExpectQuery("FROM enrollment_requests r").WillReturnRows(requestRow(7, models.RequestStatusRejected))

	_, err := f.svc.Approve(context.Background(), 7, 1)
	assert.True(t, domain.IsConflict(err))
	assert.Empty(t, f.pub.events)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRejectRequiresReason(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.Reject(context.Background(), 7, 1, "   ")
	assert.True(t, domain.IsValidation(err))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRejectNotifiesLearner(t *testing.T) {
	f := newPaymentFixture(t)
	f.mock.ExpectQuery("FROM enrollment_requests r").WillReturnRows(requestRow(7, models.RequestStatusPending))
	f.mock.ExpectExec("UPDATE enrollment_requests").
		WithArgs(models.RequestStatusRejected, "screenshot unreadable", int64(1), sqlmock.AnyArg(), int64(7), models.RequestStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, f.svc.Reject(context.Background(), 7, 1, " screenshot unreadable "))
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, "screenshot unreadable", f.pub.events[0].Reason)
	require.Len(t, f.mailer.sent, 1)
	assert.Contains(t, f.mailer.sent[0].Text, "screenshot unreadable")
}

func TestScreenshotStreamsStoredProof(t *testing.T) {
	f := newPaymentFixture(t)
	f.store.objects["payment-proofs/2025/01/a.png"] = pngHeader
	f.mock.ExpectQuery("FROM enrollment_requests r").WillReturnRows(requestRow(7, models.RequestStatusPending))

	rc, ct, err := f.svc.Screenshot(context.Background(), 7)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, pngHeader, data)
}

func TestScreenshotMissingObject(t *testing.T) {
	f := newPaymentFixture(t)
	f.mock.ExpectQuery("FROM enrollment_requests r").WillReturnRows(requestRow(7, models.RequestStatusPending))

	_, _, err := f.svc.Screenshot(context.Background(), 7)
	assert.True(t, domain.IsNotFound(err))
}

func TestListRejectsUnknownStatus(t *testing.T) {
	f := newPaymentFixture(t)
	_, _, err := f.svc.List(context.Background(), models.PaymentFilter{Status: "lunas"})
	assert.True(t, domain.IsValidation(err))
}
