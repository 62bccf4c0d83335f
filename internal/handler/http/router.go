package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	summaryHandler SummaryHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Opened from the confirmation email, possibly signed out
		r.Post("/users/email/confirm", userHandler.ConfirmEmailChange)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/today", attendanceHandler.Today)
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/lunch-out", attendanceHandler.LunchOut)
				r.Post("/lunch-in", attendanceHandler.LunchIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", attendanceHandler.List)
					r.Put("/", attendanceHandler.EditRecord)
					r.Put("/remarks", attendanceHandler.EditRemarks)
					r.Delete("/", attendanceHandler.DeleteMany)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/summaries/{employeeID}", func(r chi.Router) {
				r.Get("/", summaryHandler.GetAllTime)
				r.Get("/compliance", summaryHandler.GetCompliance)
				r.Get("/daily", summaryHandler.GetDailyData)
				r.Get("/calendar", summaryHandler.GetCalendar)
				r.Get("/export", summaryHandler.Export)
			})

			r.Route("/users", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Get("/", userHandler.Me)
					r.Put("/", userHandler.UpdateBasicInformation)
					r.Post("/email", userHandler.RequestEmailChange)
					r.Put("/password", userHandler.UpdatePassword)
				})

				r.With(middleware.RequirePermission(user.PermissionUsersSelect)).Get("/", userHandler.List)
				r.With(middleware.RequirePermission(user.PermissionUsersDelete)).Delete("/{id}", userHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
