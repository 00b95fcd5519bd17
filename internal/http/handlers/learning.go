package handlers

import (
	"net/http"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type EnrollmentListResponse struct {
	Enrollments []models.Enrollment `json:"enrollments"`
	Pagination  *domain.Pagination  `json:"pagination,omitempty"`
}

func (h *Handler) MyEnrollments(c *gin.Context) {
	list, err := h.Learning.MyEnrollments(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, EnrollmentListResponse{Enrollments: list})
}

func (h *Handler) ListEnrollments(c *gin.Context) {
	list, p, err := h.Learning.AllEnrollments(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, EnrollmentListResponse{Enrollments: list, Pagination: &p})
}

func (h *Handler) ListAssignments(c *gin.Context) {
	courseID, ok := courseIDQuery(c)
	if !ok {
		return
	}
	list, err := h.Learning.Assignments(c.Request.Context(), courseID, middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": list})
}

func (h *Handler) CreateAssignment(c *gin.Context) {
	var in models.Assignment
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = 0
	a, err := h.Learning.SaveAssignment(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAssignment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in models.Assignment
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	a, err := h.Learning.SaveAssignment(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAssignment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Learning.DeleteAssignment(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "assignment deleted"})
}

func (h *Handler) ListResources(c *gin.Context) {
	courseID, ok := courseIDQuery(c)
	if !ok {
		return
	}
	list, err := h.Learning.Resources(c.Request.Context(), courseID, middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": list})
}

func (h *Handler) CreateResource(c *gin.Context) {
	var in models.Resource
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = 0
	r, err := h.Learning.AddResource(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) DeleteResource(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Learning.DeleteResource(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "resource deleted"})
}
