package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agencylms/internal/auth"
	intconfig "agencylms/internal/config"
	"agencylms/internal/http/handlers"
	"agencylms/internal/repositories"
	"agencylms/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type testServer struct {
	engine *gin.Engine
	mock   sqlmock.Sqlmock
	tokens auth.Tokens
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens := auth.NewTokens("test-secret", time.Hour, 24*time.Hour)
	hd := &handlers.Handler{
		DB:      db,
		Contact: services.ContactService{Repo: repositories.ContactRepository{DB: db}},
		Auth:    services.AuthService{Users: repositories.UserRepository{DB: db}, Tokens: tokens},
		Courses: services.CourseService{Repo: repositories.CourseRepository{DB: db}},
		Certificates: services.CertificateService{
			Certs:   repositories.CertificateRepository{DB: db},
			Courses: repositories.CourseRepository{DB: db},
		},
		Enrollments: services.EnrollmentService{
			Courses:  repositories.CourseRepository{DB: db},
			Requests: repositories.EnrollmentRepository{DB: db},
		},
	}
	env := intconfig.Env{AllowedOrigins: []string{"http://localhost:3000"}}
	return testServer{engine: NewRouter(env, hd, tokens), mock: mock, tokens: tokens}
}

func (s testServer) token(t *testing.T, admin bool) string {
	t.Helper()
	tok, _, err := s.tokens.Issue(5, "user@example.com", admin, false)
	require.NoError(t, err)
	return tok
}

func (s testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "/api/nope", decode(t, w)["path"])
}

func TestRoutesListsEnrollEndpoints(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/routes", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/enroll-request"`)
	assert.Contains(t, w.Body.String(), `"/api/enroll-request"`)
}

func TestSubmitContactValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(jsonRequest(http.MethodPost, "/api/contact", `{"firstName":"A","email":"bad"}`), "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "validation_error", body["code"])
	assert.Equal(t, "First name must be at least 2 characters", body["error"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "Please enter a valid email address", details["email"])
	assert.Contains(t, details, "message")
}

func TestSubmitContactEmptyBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	w := s.do(req, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body is empty", decode(t, w)["error"])
}

func TestSubmitContactCreated(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnResult(sqlmock.NewResult(7, 1))

	w := s.do(jsonRequest(http.MethodPost, "/api/contact",
		`{"firstName":"Asha","lastName":"Rao","email":"Asha@Example.com","message":"Please share the course brochure."}`), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 7, decode(t, w)["contactId"])
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestAdminRoutesAreGated(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/contact-messages", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/contact-messages", nil), s.token(t, false))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode(t, w)["code"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/payments", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueCertificateBindingErrors(t *testing.T) {
	s := newTestServer(t)
	w := s.do(jsonRequest(http.MethodPost, "/api/certificates", `{"email":"not-an-email"}`), s.token(t, true))
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := decode(t, w)["details"].(map[string]any)
	assert.Equal(t, "recipientName is required", details["recipientName"])
	assert.Equal(t, "Please enter a valid email address", details["email"])
}

func TestInvalidIDParam(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodDelete, "/api/certificates/abc", nil), s.token(t, true))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid id", decode(t, w)["error"])
}

func TestEnrollRequestRejectsNonMultipart(t *testing.T) {
	s := newTestServer(t)
	w := s.do(jsonRequest(http.MethodPost, "/enroll-request", `{}`), "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "expected multipart form data", body["error"])
}

func enrollForm(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/enroll-request", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestEnrollRequestValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(enrollForm(t, map[string]string{
		"courseId": "3",
		"email":    "asha@example.com",
		"phone":    "98765",
	}), "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Full name is required", body["error"])
	details := body["details"].(map[string]any)
	assert.Contains(t, details, "phone")
	assert.Contains(t, details, "paymentScreenshot")
	assert.NotContains(t, details, "courseId")
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestEnrollRequestRejectsBadToken(t *testing.T) {
	s := newTestServer(t)
	w := s.do(enrollForm(t, map[string]string{"courseId": "3"}), "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
