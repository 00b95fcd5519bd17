package handlers

import (
	"database/sql"

	"agencylms/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the services every route needs.
type Handler struct {
	DB              *sql.DB
	Auth            services.AuthService
	Users           services.UserService
	Courses         services.CourseService
	Enrollments     services.EnrollmentService
	Learning        services.LearningService
	Payments        services.PaymentService
	Certificates    services.CertificateService
	Internships     services.InternshipService
	Contact         services.ContactService
	ServiceRequests services.ServiceRequestService

	engine *gin.Engine
}

// SetRouter stores the active gin engine for /api/routes.
func (h *Handler) SetRouter(r *gin.Engine) {
	h.engine = r
}
