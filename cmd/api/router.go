package main

import (
	"database/sql"
	"net/http"

	"github.com/HammadJahangir123/office-hub-pro/internal/config"
	"github.com/HammadJahangir123/office-hub-pro/internal/handlers"
	"github.com/HammadJahangir123/office-hub-pro/internal/middleware"
	"github.com/HammadJahangir123/office-hub-pro/internal/notify"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
	"github.com/HammadJahangir123/office-hub-pro/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the full API router. Split out from main so tests can run
// the real routing and middleware against a mock DB.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	employeeRepo := repo.NewEmployeeRepo(db)
	auditRepo := repo.NewAuditRepo(db)
	userRepo := repo.NewUserRepo(db)

	var notifier service.Notifier
	if cfg.MailFnURL != "" {
		notifier = notify.NewDispatcher(userRepo, cfg.MailFnURL, cfg.MailFnToken)
	}
	employeeService := service.NewEmployeeService(db, employeeRepo, auditRepo, userRepo, notifier)

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Secret: []byte(cfg.JWTSecret), ExpireHours: cfg.JWTExpireHours}
	employeeHandler := &handlers.EmployeeHandler{Repo: employeeRepo, Service: employeeService}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}
	userHandler := &handlers.UserHandler{Repo: userRepo}
	networkHandler := &handlers.NetworkHandler{Repo: employeeRepo}
	importHandler := &handlers.ImportHandler{Service: employeeService}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Auth endpoints are rate limited per client IP.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.JWT([]byte(cfg.JWTSecret)))

		r.Get("/employees", employeeHandler.ListEmployees)
		r.Get("/employees/{id}", employeeHandler.GetEmployee)
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Post("/employees", employeeHandler.CreateEmployee)
			r.Put("/employees/{id}", employeeHandler.UpdateEmployee)
		})
		r.Delete("/employees/{id}", employeeHandler.DeleteEmployee)

		r.Get("/audit", auditHandler.ListAudit)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.With(middleware.MaxBytes(8 << 20)).Post("/employees/import", importHandler.ImportEmployees)
			r.Get("/network/overview", networkHandler.NetworkOverview)
			r.Get("/users", userHandler.ListUsers)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).Post("/users", userHandler.CreateUser)
			r.Get("/users/{id}", userHandler.GetUser)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).Put("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)
		})
	})

	return r
}
