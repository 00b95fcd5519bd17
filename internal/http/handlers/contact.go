package handlers

import (
	"net/http"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/services"
	"agencylms/internal/validation"

	"github.com/gin-gonic/gin"
)

type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Message   string `json:"message"`
}

type ContactResponse struct {
	Message   string `json:"message"`
	ContactID int64  `json:"contactId"`
}

type ContactListResponse struct {
	Messages   []models.ContactMessage `json:"messages"`
	Pagination domain.Pagination       `json:"pagination"`
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := h.Contact.Submit(c.Request.Context(), validation.ContactInput(req))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ContactResponse{
		Message:   "Thank you for reaching out! We will get back to you soon.",
		ContactID: id,
	})
}

func (h *Handler) ListContactMessages(c *gin.Context) {
	list, p, err := h.Contact.List(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContactListResponse{Messages: list, Pagination: p})
}

type ServiceRequestListResponse struct {
	Requests   []models.ServiceRequest `json:"requests"`
	Pagination domain.Pagination       `json:"pagination"`
}

type ServiceRequestCreated struct {
	Message          string `json:"message"`
	ServiceRequestID int64  `json:"serviceRequestId"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) SubmitServiceRequest(c *gin.Context) {
	var req services.ServiceRequestInput
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := h.ServiceRequests.Submit(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ServiceRequestCreated{
		Message:          "Your request has been received. Our team will contact you shortly.",
		ServiceRequestID: id,
	})
}

func (h *Handler) ListServiceRequests(c *gin.Context) {
	list, p, err := h.ServiceRequests.List(c.Request.Context(), c.Query("status"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ServiceRequestListResponse{Requests: list, Pagination: p})
}

func (h *Handler) UpdateServiceRequestStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req StatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.ServiceRequests.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "status updated"})
}
