package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/payrollph/payroll-backend-go/internal/handler/http/middleware"
	"github.com/payrollph/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	env string,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	masterHandler MasterHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", attendanceHandler.Create)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", masterHandler.ListBranches)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateBranch)
					r.Put("/{id}", masterHandler.UpdateBranch)
					r.Delete("/{id}", masterHandler.DeleteBranch)
				})

				r.Get("/{branchID}/rules", masterHandler.GetRule)
				r.With(middleware.AdminOnly).Put("/{branchID}/rules", masterHandler.UpdateRule)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", masterHandler.ListSuspensions)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateSuspension)
					r.Delete("/{id}", masterHandler.DeleteSuspension)
				})
			})

			r.Route("/periods", func(r chi.Router) {
				r.Get("/", masterHandler.ListPeriods)
				r.With(middleware.AdminOnly).Post("/", masterHandler.CreatePeriod)
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", masterHandler.ListProfiles)
				r.Get("/{profileID}/dtr", payrollHandler.DailyTimeRecord)
				r.Get("/{profileID}/contributions", masterHandler.GetContribution)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateProfile)
					r.Put("/{id}", masterHandler.UpdateProfile)
					r.Post("/{id}/approve", masterHandler.ApproveProfile)
					r.Put("/{profileID}/contributions", masterHandler.UpdateContribution)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/preview", payrollHandler.Preview)
				r.Get("/batches", payrollHandler.ListBatches)
				r.Get("/batches/{id}", payrollHandler.GetBatch)
				r.Get("/items/{itemID}/payslip", payrollHandler.DownloadPayslip)

				r.With(middleware.AdminOnly).Post("/process", payrollHandler.ProcessBatch)
			})
		})
	})
	return r
}
