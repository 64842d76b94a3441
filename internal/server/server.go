package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"disciplix/internal/auth"
	"disciplix/internal/config"
	"disciplix/internal/email"
	"disciplix/internal/review"
	"disciplix/internal/session"
	"disciplix/internal/trainer"
	"disciplix/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(cfg.ClientURL),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	secureCookies := cfg.Environment == "production"

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, emailService, cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.ClientURL)
	userHandler := user.NewHandler(userService, secureCookies)

	trainerRepo := trainer.NewRepository(db)
	trainerService := trainer.NewService(trainerRepo, review.NewRepository(db))
	trainerHandler := trainer.NewHandler(trainerService)

	sessionRepo := session.NewRepository(db)
	sessionService := session.NewService(sessionRepo, userRepo, emailService)
	sessionHandler := session.NewHandler(sessionService)

	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", userHandler.Register)
		authRoutes.POST("/login", userHandler.Login)
		authRoutes.POST("/logout", userHandler.Logout)
		authRoutes.POST("/refresh", userHandler.RefreshToken)
		authRoutes.POST("/verify-email", userHandler.VerifyEmail)
		authRoutes.POST("/forgot-password", userHandler.ForgotPassword)
		authRoutes.POST("/reset-password", userHandler.ResetPassword)
	}

	// The trainer directory is browsable without an account.
	directory := router.Group("/api/training/trainers")
	{
		directory.GET("", trainerHandler.List)
		directory.GET("/specialties", trainerHandler.ListSpecialties)
		directory.GET("/:trainerId", trainerHandler.Get)
	}

	authMiddleware := auth.Middleware(cfg.JWTAccessSecret, userRepo)
	protected := router.Group("/api")
	protected.Use(authMiddleware)
	{
		protected.GET("/auth/me", userHandler.GetMe)
		protected.POST("/training/trainers/:trainerId/book", sessionHandler.Book)
		protected.GET("/training/sessions", sessionHandler.List)
		protected.POST("/training/sessions/:sessionId/cancel", sessionHandler.Cancel)
	}

	router.GET("/health", Health(cfg))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware(clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", clientURL)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
