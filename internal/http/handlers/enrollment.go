package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"agencylms/internal/domain"
	"agencylms/internal/http/middleware"
	"agencylms/internal/services"
	"agencylms/internal/validation"

	"github.com/gin-gonic/gin"
)

// maxEnrollBody leaves room for the text fields next to a 5MB screenshot.
const maxEnrollBody = validation.MaxScreenshotBytes + 1<<20

// EnrollResponse is the checkout endpoint contract: success plus message or error.
type EnrollResponse struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message,omitempty"`
	Error        string            `json:"error,omitempty"`
	EnrollmentID int64             `json:"enrollmentId,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	RequestID    string            `json:"request_id,omitempty"`
}

func (h *Handler) EnrollRequest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEnrollBody)
	if err := c.Request.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.enrollFailed(c, domain.ValidationError{Field: validation.FieldPaymentScreenshot, Msg: "File size should be less than 5MB"})
			return
		}
		h.enrollFailed(c, domain.ValidationError{Msg: "expected multipart form data", Err: err})
		return
	}
	defer func() {
		if c.Request.MultipartForm != nil {
			_ = c.Request.MultipartForm.RemoveAll()
		}
	}()

	form := func(k string) string { return strings.TrimSpace(c.Request.FormValue(k)) }
	courseID, _ := strconv.ParseInt(form(validation.FieldCourseID), 10, 64)

	in := services.EnrollmentSubmission{
		CourseID: courseID,
		Personal: validation.PersonalDetails{
			FullName: form(validation.FieldFullName),
			Email:    form(validation.FieldEmail),
			Phone:    form(validation.FieldPhone),
			Address:  form(validation.FieldAddress),
			City:     form(validation.FieldCity),
			State:    form(validation.FieldState),
			Pincode:  form(validation.FieldPincode),
		},
		PaymentMethod: form(validation.FieldPaymentMethod),
		TransactionID: form(validation.FieldTransactionID),
	}
	if rc := middleware.Caller(c); rc.Authenticated() {
		uid := int64(rc.UserID)
		in.UserID = &uid
	}

	if f, hdr, err := c.Request.FormFile(validation.FieldPaymentScreenshot); err == nil {
		defer f.Close()
		in.Screenshot = f
		in.ScreenshotType = hdr.Header.Get("Content-Type")
		in.ScreenshotSize = hdr.Size
	}

	id, err := h.Enrollments.Submit(c.Request.Context(), in)
	if err != nil {
		h.enrollFailed(c, err)
		return
	}
	c.JSON(http.StatusCreated, EnrollResponse{
		Success:      true,
		Message:      "Enrollment request submitted successfully! We will verify your payment and confirm your enrollment shortly.",
		EnrollmentID: id,
	})
}

func (h *Handler) enrollFailed(c *gin.Context, err error) {
	status, _, msg, details := classify(c, err)
	c.JSON(status, EnrollResponse{
		Success:   false,
		Error:     msg,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}
