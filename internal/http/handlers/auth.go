package handlers

import (
	"net/http"

	"agencylms/internal/http/middleware"
	"agencylms/internal/validation"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), validation.RegistrationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": u})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.Auth.Me(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
