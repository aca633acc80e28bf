package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/handler/http/middleware"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	appEnv string,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	postHandler PostHandler,
	rosterHandler RosterHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "guardpost"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Route("/login", func(r chi.Router) {
				r.Post("/guard", authHandler.LoginGuard)
				r.Post("/admin", authHandler.LoginAdmin)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/attempt", attendanceHandler.Attempt)
				r.Post("/validate", attendanceHandler.Validate)
				r.Get("/active-shift", attendanceHandler.ActiveShift)
				r.Get("/history", attendanceHandler.History)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/coverage", attendanceHandler.Coverage)
					r.Post("/substitutions", attendanceHandler.RegisterSubstitution)
				})
			})

			r.Route("/roster", func(r chi.Router) {
				r.Get("/my", rosterHandler.MyPlannedShifts)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", rosterHandler.ListPlannedShifts)
					r.Post("/", rosterHandler.CreatePlannedShift)
					r.Delete("/{id}", rosterHandler.DeletePlannedShift)
				})
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postHandler.ListPosts)
				r.Get("/{id}", postHandler.GetPost)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", postHandler.CreatePost)
					r.Put("/{id}", postHandler.UpdatePost)
					r.Delete("/{id}", postHandler.DeletePost)
				})
			})

			// Admin only
			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Get("/{id}", employeeHandler.GetEmployee)
				r.Put("/{id}", employeeHandler.UpdateEmployee)
				r.Delete("/{id}", employeeHandler.DeactivateEmployee)
			})
		})
	})
	return r
}
