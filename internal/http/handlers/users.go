package handlers

import (
	"net/http"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type UserListResponse struct {
	Users      []models.User     `json:"users"`
	Pagination domain.Pagination `json:"pagination"`
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	list, p, err := h.Users.List(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserListResponse{Users: list, Pagination: p})
}

func (h *Handler) SetUserAdmin(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req SetAdminRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Users.SetAdmin(c.Request.Context(), id, *req.IsAdmin, middleware.Caller(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "user updated"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id, middleware.Caller(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}
