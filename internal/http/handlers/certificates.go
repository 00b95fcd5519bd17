package handlers

import (
	"net/http"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/http/middleware"
	"agencylms/internal/services"

	"github.com/gin-gonic/gin"
)

type CertificateListResponse struct {
	Certificates []models.Certificate `json:"certificates"`
	Pagination   *domain.Pagination   `json:"pagination,omitempty"`
}

// CertificateVerification is the public view: no email or user id.
type CertificateVerification struct {
	Valid             bool   `json:"valid"`
	CertificateNumber string `json:"certificateNumber"`
	RecipientName     string `json:"recipientName"`
	CourseTitle       string `json:"courseTitle"`
	IssuedAt          string `json:"issuedAt"`
}

func (h *Handler) IssueCertificate(c *gin.Context) {
	var in services.IssueCertificateInput
	if !BindJSONOrError(c, &in) {
		return
	}
	ct, err := h.Certificates.Issue(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *Handler) MyCertificates(c *gin.Context) {
	list, err := h.Certificates.ListMine(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, CertificateListResponse{Certificates: list})
}

func (h *Handler) ListCertificates(c *gin.Context) {
	list, p, err := h.Certificates.List(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, CertificateListResponse{Certificates: list, Pagination: &p})
}

func (h *Handler) VerifyCertificate(c *gin.Context) {
	ct, err := h.Certificates.Verify(c.Request.Context(), c.Param("number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, CertificateVerification{
		Valid:             true,
		CertificateNumber: ct.CertificateNumber,
		RecipientName:     ct.RecipientName,
		CourseTitle:       ct.CourseTitle,
		IssuedAt:          ct.IssuedAt.Format("2006-01-02"),
	})
}

// GetCertificatePDF returns the certificate inline.
func (h *Handler) GetCertificatePDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pdf, filename, err := h.Certificates.PDF(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) DeleteCertificate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Certificates.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "certificate deleted"})
}
