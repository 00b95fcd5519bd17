package api

import (
	stdhttp "net/http"

	intconfig "agencylms/internal/config"
	h "agencylms/internal/http/handlers"
	"agencylms/internal/http/middleware"
	"agencylms/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, hd *h.Handler, tokens middleware.TokenParser) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.CORS(env.AllowedOrigins))
	r.MaxMultipartMemory = 8 << 20

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	optional := middleware.AuthOptional(tokens)
	required := middleware.AuthRequired(tokens)
	admin := []gin.HandlerFunc{required, middleware.RequireAdmin()}

	// Checkout posts here; the /api alias is for clients that prefix everything.
	r.POST("/enroll-request", optional, hd.EnrollRequest)

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", hd.Routes)

		api.POST("/enroll-request", optional, hd.EnrollRequest)

		// Auth
		api.POST("/register", hd.Register)
		api.POST("/login", hd.Login)

		// Leads
		api.POST("/contact", hd.SubmitContact)
		api.GET("/contact-messages", append(admin, hd.ListContactMessages)...)
		serviceRequests := api.Group("/service-requests")
		serviceRequests.POST("", hd.SubmitServiceRequest)
		serviceRequests.GET("", append(admin, hd.ListServiceRequests)...)
		serviceRequests.PUT("/:id/status", append(admin, hd.UpdateServiceRequestStatus)...)

		// Users
		users := api.Group("/users")
		users.GET("/me", required, hd.Me)
		users.GET("", append(admin, hd.ListUsers)...)
		users.PUT("/:id/admin", append(admin, hd.SetUserAdmin)...)
		users.DELETE("/:id", append(admin, hd.DeleteUser)...)

		// Catalog
		mountCourses(api.Group("/courses"), hd, optional, admin)
		mountInternships(api.Group("/internships"), hd, optional, admin)

		// Learning
		enrollments := api.Group("/enrollments")
		enrollments.GET("/me", required, hd.MyEnrollments)
		enrollments.GET("", append(admin, hd.ListEnrollments)...)

		assignments := api.Group("/assignments")
		assignments.GET("", required, hd.ListAssignments)
		assignments.POST("", append(admin, hd.CreateAssignment)...)
		assignments.PUT("/:id", append(admin, hd.UpdateAssignment)...)
		assignments.DELETE("/:id", append(admin, hd.DeleteAssignment)...)

		resources := api.Group("/resources")
		resources.GET("", required, hd.ListResources)
		resources.POST("", append(admin, hd.CreateResource)...)
		resources.DELETE("/:id", append(admin, hd.DeleteResource)...)

		// Payment verification
		mountPayments(api.Group("/payments", admin...), hd)

		// Certificates
		certs := api.Group("/certificates")
		certs.GET("/verify/:number", hd.VerifyCertificate)
		certs.GET("/me", required, hd.MyCertificates)
		certs.GET("/:id/pdf", required, hd.GetCertificatePDF)
		certs.GET("", append(admin, hd.ListCertificates)...)
		certs.POST("", append(admin, hd.IssueCertificate)...)
		certs.DELETE("/:id", append(admin, hd.DeleteCertificate)...)
	}

	hd.SetRouter(r)
	return r
}

func mountCourses(g *gin.RouterGroup, hd *h.Handler, optional gin.HandlerFunc, admin []gin.HandlerFunc) {
	g.GET("", optional, hd.ListCourses)
	g.GET("/:id", optional, hd.GetCourse)
	g.POST("", append(admin, hd.CreateCourse)...)
	g.PUT("/:id", append(admin, hd.UpdateCourse)...)
	g.DELETE("/:id", append(admin, hd.DeleteCourse)...)
}

func mountInternships(g *gin.RouterGroup, hd *h.Handler, optional gin.HandlerFunc, admin []gin.HandlerFunc) {
	g.GET("", optional, hd.ListInternships)
	g.GET("/:id", optional, hd.GetInternship)
	g.POST("", append(admin, hd.CreateInternship)...)
	g.PUT("/:id", append(admin, hd.UpdateInternship)...)
	g.DELETE("/:id", append(admin, hd.DeleteInternship)...)
}

func mountPayments(g *gin.RouterGroup, hd *h.Handler) {
	g.GET("", hd.ListPayments)
	g.GET("/:id", hd.GetPayment)
	g.GET("/:id/screenshot", hd.GetPaymentScreenshot)
	g.PUT("/:id/approve", hd.ApprovePayment)
	g.PUT("/:id/reject", hd.RejectPayment)
}
