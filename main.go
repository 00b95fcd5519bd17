package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agencylms/internal/auth"
	"agencylms/internal/cache"
	intconfig "agencylms/internal/config"
	intdb "agencylms/internal/db"
	"agencylms/internal/events"
	router "agencylms/internal/http"
	"agencylms/internal/http/handlers"
	"agencylms/internal/notify"
	"agencylms/internal/repositories"
	"agencylms/internal/services"
	"agencylms/internal/storage"
	"agencylms/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		panic("load config: " + err.Error())
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.NewLogger(env.LogLevel, gin.Mode() == gin.DebugMode)
	if err != nil {
		panic("build logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()
	utils.SetLogger(logger)

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if env.DBAutoMigrate {
		if err := intdb.Migrate(env.DSN()); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	ctx := context.Background()
	store, err := buildStore(ctx, env)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	var courseCache cache.Cache
	if env.RedisAddr != "" {
		rc := cache.NewRedisCache(env.RedisAddr, env.RedisPassword, env.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
			_ = rc.Close()
		} else {
			courseCache = rc
			defer rc.Close()
		}
		cancel()
	}

	var publisher events.Publisher = events.Nop{}
	if len(env.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(env.KafkaBrokers, env.KafkaTopic)
		defer kp.Close()
		publisher = kp
	}

	var mailer notify.Mailer = notify.LogMailer{}
	if env.SendgridAPIKey != "" {
		mailer = notify.NewSendgridMailer(env.SendgridAPIKey, env.MailFromName, env.MailFrom)
	}

	tokens := auth.NewTokens(env.JWTSecret, env.TokenTTL, env.RememberMeTTL)
	h := buildHandler(db, tokens, store, courseCache, publisher, mailer, env)
	r := router.NewRouter(env, h, tokens)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

func buildStore(ctx context.Context, env intconfig.Env) (storage.ProofStore, error) {
	if env.S3Bucket != "" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    env.S3Bucket,
			Endpoint:  env.S3Endpoint,
			Region:    env.S3Region,
			AccessKey: env.S3AccessKey,
			SecretKey: env.S3SecretKey,
		})
	}
	return storage.NewLocalStore(env.UploadDir)
}

func buildHandler(db *sql.DB, tokens auth.Tokens, store storage.ProofStore, c cache.Cache,
	pub events.Publisher, mailer notify.Mailer, env intconfig.Env) *handlers.Handler {
	users := repositories.UserRepository{DB: db}
	courses := repositories.CourseRepository{DB: db}
	enrollments := repositories.EnrollmentRepository{DB: db}

	return &handlers.Handler{
		DB:    db,
		Auth:  services.AuthService{Users: users, Tokens: tokens},
		Users: services.UserService{Repo: users},
		Courses: services.CourseService{
			Repo:  courses,
			Cache: c,
			TTL:   env.CourseCacheTTL,
		},
		Enrollments: services.EnrollmentService{
			Courses:  courses,
			Requests: enrollments,
			Store:    store,
			Events:   pub,
			Mailer:   mailer,
		},
		Learning: services.LearningService{
			EnrollmentRepo: enrollments,
			CourseRepo:     courses,
			AssignmentRepo: repositories.AssignmentRepository{DB: db},
			ResourceRepo:   repositories.ResourceRepository{DB: db},
		},
		Payments: services.PaymentService{
			Requests: enrollments,
			Store:    store,
			Events:   pub,
			Mailer:   mailer,
		},
		Certificates: services.CertificateService{
			Certs:   repositories.CertificateRepository{DB: db},
			Courses: courses,
			Issuer:  env.MailFromName,
		},
		Internships:     services.InternshipService{Repo: repositories.InternshipRepository{DB: db}},
		Contact:         services.ContactService{Repo: repositories.ContactRepository{DB: db}, Mailer: mailer, Inbox: env.AgencyInbox},
		ServiceRequests: services.ServiceRequestService{Repo: repositories.ServiceRequestRepository{DB: db}, Mailer: mailer, Inbox: env.AgencyInbox},
	}
}
