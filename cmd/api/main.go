package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/config"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/summary"
	appHTTP "github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-tracker-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-tracker-go/internal/service/auth"
	summaryService "github.com/cmlabs-hris/attendance-tracker-go/internal/service/summary"
	userService "github.com/cmlabs-hris/attendance-tracker-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-tracker"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	passwordResetRepo := postgresql.NewPasswordResetRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")

	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	} else {
		slog.Warn("Google login disabled, OAuth2 client is not configured")
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	clock := worktime.New(cfg.Location(), worktime.WithHours(cfg.WorkDay.RegularHours, cfg.WorkDay.LunchHours))
	policy := summary.Policy{HomePct: cfg.Policy.HomePct, Tolerance: cfg.Policy.Tolerance}

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository, passwordResetRepo, emailService, cfg.App.FrontendURL)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, clock)
	summarySvc := summaryService.NewSummaryService(summaryRepo, export.NewDefaultRegistry(), clock, policy)
	userSvc := userService.NewUserService(userRepo, emailService, cfg.App.FrontendURL)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       level,
			AllowedOrigins: cfg.App.CORSOrigins,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		summaryHandler,
		userHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}
