package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nclex_keys/internal/config"
	"nclex_keys/internal/handler"
	"nclex_keys/internal/jobs"
	"nclex_keys/internal/logger"
	"nclex_keys/internal/middleware"
	"nclex_keys/internal/notify"
	"nclex_keys/internal/repository"
	"nclex_keys/internal/service"
	"nclex_keys/internal/utils"
	"nclex_keys/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	// Ensure uploads directory exists
	if err := os.MkdirAll(cfg.UploadsDir, os.ModePerm); err != nil {
		zapLogger.Fatal("Failed to create uploads directory", zap.String("dir", cfg.UploadsDir), zap.Error(err))
	}
	zapLogger.Info("Uploads will be stored in", zap.String("dir", cfg.UploadsDir))

	// --- Database Connection ---
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	dbPool, err := config.ConnectDB(startupCtx, cfg.DB, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Migrations ---
	if err := config.Migrate(startupCtx, dbPool, zapLogger); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	var mailer notify.Mailer
	if cfg.SendgridAPIKey != "" {
		mailer = notify.NewSendgridMailer(cfg.SendgridAPIKey, mail.Address{Name: cfg.EmailFromName, Address: cfg.EmailFrom}, zapLogger)
	} else {
		zapLogger.Warn("SENDGRID_API_KEY not set, emails will only be logged")
		mailer = notify.NewConsoleMailer(zapLogger)
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	programRepo := repository.NewProgramRepository(dbPool)
	tokenRepo := repository.NewTokenRepository(dbPool)
	enrollmentRepo := repository.NewEnrollmentRepository(dbPool)
	courseRepo := repository.NewCourseRepository(dbPool)
	progressRepo := repository.NewProgressRepository(dbPool)
	liveClassRepo := repository.NewLiveClassRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, tokenRepo, programRepo, enrollmentRepo, jwtUtil, mailer, cfg.WhatsAppNumber, zapLogger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, mailer, cfg.WhatsAppNumber, cfg.WhatsAppGroupURL, zapLogger)
	programService := service.NewProgramService(programRepo, zapLogger)
	tokenService := service.NewTokenService(tokenRepo, programRepo, zapLogger)
	courseService := service.NewCourseService(courseRepo, programRepo, enrollmentRepo, cfg.UploadsDir, cfg.MaxUploadBytes, zapLogger)
	progressService := service.NewProgressService(progressRepo, courseRepo, enrollmentRepo, zapLogger)
	dashboardService := service.NewDashboardService(userRepo, enrollmentRepo, courseRepo, progressRepo, programRepo, liveClassRepo, cfg.WhatsAppGroupURL)
	liveClassService := service.NewLiveClassService(liveClassRepo, enrollmentRepo, zapLogger)

	// --- Admin Bootstrap ---
	if cfg.AdminEmail != "" {
		if _, err := authService.EnsureAdmin(startupCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			zapLogger.Fatal("Failed to ensure admin account", zap.Error(err))
		}
	}
	cancelStartup()

	// --- Initialize Handlers ---
	if err := handler.InitValidators(); err != nil {
		zapLogger.Fatal("Failed to initialize validators", zap.Error(err))
	}
	authHandler := handler.NewAuthHandler(authService, zapLogger)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService, zapLogger)
	programHandler := handler.NewProgramHandler(programService, tokenService, zapLogger)
	courseHandler := handler.NewCourseHandler(courseService, zapLogger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, progressService, zapLogger)
	liveClassHandler := handler.NewLiveClassHandler(liveClassService, zapLogger)
	pageHandler := handler.NewPageHandler(programService, cfg.WhatsAppNumber, cfg.WhatsAppGroupURL, zapLogger)

	// --- Setup Gin Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger), gin.Recovery(), middleware.CORS())

	templates, err := web.Templates()
	if err != nil {
		zapLogger.Fatal("Failed to parse page templates", zap.Error(err))
	}
	router.SetHTMLTemplate(templates)
	router.Static("/uploads", cfg.UploadsDir)

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware()
	staffRoleMW := middleware.StaffMiddleware()
	studentRoleMW := middleware.StudentMiddleware()

	// --- Register Routes ---
	pageHandler.RegisterPageRoutes(router)

	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	enrollmentHandler.RegisterEnrollmentRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	programHandler.RegisterProgramRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	courseHandler.RegisterCourseRoutes(apiGroup, jwtAuthMW, staffRoleMW)
	dashboardHandler.RegisterDashboardRoutes(apiGroup, jwtAuthMW, studentRoleMW, staffRoleMW)
	liveClassHandler.RegisterLiveClassRoutes(apiGroup, jwtAuthMW, staffRoleMW)

	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Background Jobs ---
	digest := jobs.NewPendingDigest(enrollmentService, mailer, cfg.StaffEmail, cfg.DigestAfter, zapLogger)
	scheduler, err := jobs.NewScheduler(cfg.DigestCron, digest, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to schedule pending digest", zap.Error(err))
	}
	scheduler.Start()

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("listen", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	// wait for a running digest before closing the pool
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
