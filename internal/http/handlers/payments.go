package handlers

import (
	"io"
	"net/http"
	"strconv"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type PaymentListResponse struct {
	Requests   []models.EnrollmentRequest `json:"requests"`
	Pagination domain.Pagination          `json:"pagination"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ApproveResponse struct {
	Message      string `json:"message"`
	EnrollmentID int64  `json:"enrollmentId"`
}

func (h *Handler) ListPayments(c *gin.Context) {
	list, p, err := h.Payments.List(c.Request.Context(), models.PaymentFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, PaymentListResponse{Requests: list, Pagination: p})
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, err := h.Payments.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// GetPaymentScreenshot streams the stored proof inline for the admin viewer.
func (h *Handler) GetPaymentScreenshot(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	rc, contentType, err := h.Payments.Screenshot(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `inline; filename="payment-`+strconv.FormatInt(id, 10)+`"`)
	c.Header("Cache-Control", "private, no-store")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) ApprovePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	enrollmentID, err := h.Payments.Approve(c.Request.Context(), id, int64(middleware.Caller(c).UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ApproveResponse{Message: "payment approved, enrollment is active", EnrollmentID: enrollmentID})
}

func (h *Handler) RejectPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req RejectRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Payments.Reject(c.Request.Context(), id, int64(middleware.Caller(c).UserID), req.Reason); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "payment rejected"})
}
