package handlers

import (
	"net/http"

	"agencylms/internal/domain/models"
	"agencylms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListInternships(c *gin.Context) {
	includeInactive := middleware.Caller(c).IsAdmin && c.Query("all") == "1"
	list, err := h.Internships.List(c.Request.Context(), includeInactive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"internships": list})
}

func (h *Handler) GetInternship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, err := h.Internships.Get(c.Request.Context(), id, middleware.Caller(c).IsAdmin)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *Handler) CreateInternship(c *gin.Context) {
	var in models.Internship
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = 0
	in.IsActive = true
	out, err := h.Internships.Save(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateInternship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in models.Internship
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	out, err := h.Internships.Save(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteInternship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Internships.Deactivate(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "internship deactivated"})
}
