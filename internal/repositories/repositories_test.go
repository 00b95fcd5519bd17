package repositories

import (
	"context"
	"testing"
	"time"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicateEmailIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = UserRepository{DB: db}.Create(context.Background(), models.User{Name: "Jane", Email: "jane@example.com", Status: models.UserStatusActive})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE email").WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = UserRepository{DB: db}.GetByEmail(context.Background(), "nobody@example.com")
	assert.True(t, domain.IsNotFound(err))
}

func TestUserSetAdminMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_admin").WithArgs(true, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = UserRepository{DB: db}.SetAdmin(context.Background(), 9, true)
	assert.True(t, domain.IsNotFound(err))
}

func TestCourseListBuildsFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses WHERE is_published = 1 AND \(title LIKE`).
		WithArgs("%seo%", "%seo%", "%seo%", "marketing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM courses WHERE is_published = 1").
		WithArgs("%seo%", "%seo%", "%seo%", "marketing", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "slug", "description", "category", "instructor",
			"price", "duration", "level", "image_url", "is_published", "created_at", "updated_at",
		}).AddRow(1, "SEO Basics", "seo-basics", "", "marketing", "Asha", 4999.0, "4 weeks", "beginner", "", true, now, now))

	list, total, err := CourseRepository{DB: db}.List(context.Background(),
		models.CourseFilter{Query: "seo", Category: "marketing"}, domain.NewPagination(1, 10, 10, 50))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "seo-basics", list[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentApproveCreatesEnrollment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE enrollment_requests").
		WithArgs(models.RequestStatusApproved, int64(1), at, nil, int64(7), models.RequestStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO enrollments").
		WithArgs(nil, "jane@example.com", int64(3), int64(7), models.EnrollmentStatusActive, at).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	req := models.EnrollmentRequest{ID: 7, CourseID: 3, Email: "jane@example.com"}
	id, err := EnrollmentRepository{DB: db}.Approve(context.Background(), req, 1, at)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentApproveLinksExistingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(`SET status = \?, reviewed_by = \?, reviewed_at = \?, user_id = COALESCE\(user_id, \?\)`).
		WithArgs(models.RequestStatusApproved, int64(1), at, int64(12), int64(7), models.RequestStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO enrollments").
		WithArgs(int64(12), "jane@example.com", int64(3), int64(7), models.EnrollmentStatusActive, at).
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()

	req := models.EnrollmentRequest{ID: 7, CourseID: 3, Email: "jane@example.com"}
	_, err = EnrollmentRepository{DB: db}.Approve(context.Background(), req, 1, at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearnerLookupsOnlyMatchEmailOnUnlinkedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE course_id = \? AND \(user_id = \? OR \(user_id IS NULL AND email = \?\)\)`).
		WithArgs(int64(3), int64(12), "jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(`WHERE e.user_id = \? OR \(e.user_id IS NULL AND e.email = \?\)`).
		WithArgs(int64(12), "jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := EnrollmentRepository{DB: db}
	ok, err := repo.IsEnrolled(context.Background(), 3, 12, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	list, err := repo.ListForLearner(context.Background(), 12, "jane@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentApproveAlreadyReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE enrollment_requests").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = EnrollmentRepository{DB: db}.Approve(context.Background(), models.EnrollmentRequest{ID: 7}, 1, time.Now())
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRejectAlreadyReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE enrollment_requests").WillReturnResult(sqlmock.NewResult(0, 0))

	err = EnrollmentRepository{DB: db}.Reject(context.Background(), 7, 1, "blurry", time.Now())
	assert.True(t, domain.IsConflict(err))
}

func TestCertificateDuplicateNumberIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO certificates").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = CertificateRepository{DB: db}.Create(context.Background(), models.Certificate{CertificateNumber: "CERT-2025-ABCDEF12"})
	assert.True(t, domain.IsConflict(err))
}

func TestInternshipListActiveOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM internships WHERE is_active = 1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "department", "location", "mode", "duration",
			"stipend", "description", "is_active", "deadline", "created_at", "updated_at",
		}).AddRow(1, "Content Intern", "Content", "Pune", "remote", "3 months", "5000", "", true, nil, now, now))

	list, err := InternshipRepository{DB: db}.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Deadline)
	assert.True(t, list[0].IsActive)
}

func TestInternshipDeactivateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE internships SET is_active = 0").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = InternshipRepository{DB: db}.Deactivate(context.Background(), 5)
	assert.True(t, domain.IsNotFound(err))
}

func TestContactListPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contact_messages`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery("FROM contact_messages ORDER BY").WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "company", "message", "created_at"}).
			AddRow(1, "Jo", "Li", "jo@example.com", "", "", "Hello there, team", now))

	p := domain.NewPagination(3, 10, 10, 100)
	list, total, err := ContactRepository{DB: db}.List(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	assert.Len(t, list, 1)
	assert.Equal(t, 3, p.WithTotal(total).TotalPages)
}

func TestServiceRequestListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM service_requests WHERE status").WithArgs("new").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM service_requests WHERE status").WithArgs("new", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "company", "service", "budget", "message", "status", "created_at", "updated_at",
		}).AddRow(1, "Ravi", "ravi@example.com", "", "", "seo", "", "Need an SEO audit", "new", now, now))

	list, total, err := ServiceRequestRepository{DB: db}.List(context.Background(), "new", domain.NewPagination(1, 20, 20, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "seo", list[0].Service)
	assert.NoError(t, mock.ExpectationsWereMet())
}
