package handlers

import (
	"net/http"

	"agencylms/internal/domain/models"
	"agencylms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCourses(c *gin.Context) {
	page, err := h.Courses.List(c.Request.Context(), models.CourseFilter{
		Query:         c.Query("q"),
		Category:      c.Query("category"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
		IncludeHidden: middleware.Caller(c).IsAdmin && c.Query("all") == "1",
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	course, err := h.Courses.Get(c.Request.Context(), id, middleware.Caller(c).IsAdmin)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var in models.Course
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = 0
	course, err := h.Courses.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in models.Course
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	course, err := h.Courses.Update(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Courses.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "course deleted"})
}
