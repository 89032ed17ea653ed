package http

import (
	"log/slog"
	"os"

	"github.com/brightpath-edu/tutoring-backend-go/internal/handler/http/middleware"
	"github.com/brightpath-edu/tutoring-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	env string,
	payoutHandler PayoutHandler,
	payrollHandler PayrollHandler,
	executionHandler ExecutionHandler,
	jobHandler JobHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "brightpath-tutoring"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payouts", func(r chi.Router) {
				r.Get("/", payoutHandler.List)
				r.Get("/{id}", payoutHandler.Get)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/", payrollHandler.ListStatements)
				r.Get("/{id}", payrollHandler.GetStatement)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/executions", executionHandler.List)

				r.Route("/jobs", func(r chi.Router) {
					r.Post("/session-payouts/run", jobHandler.RunPayoutCalculation)
					r.Post("/payroll-aggregations/run", jobHandler.RunPayrollAggregation)
				})
			})
		})
	})
	return r
}
