package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/HammadJahangir123/office-hub-pro/internal/config"
	"github.com/HammadJahangir123/office-hub-pro/internal/db"
	"github.com/HammadJahangir123/office-hub-pro/internal/notify"
	"github.com/HammadJahangir123/office-hub-pro/internal/repo"
	"github.com/HammadJahangir123/office-hub-pro/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		slog.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	if cfg.AuditDigestCron != "" && cfg.MailFnURL != "" {
		auditRepo := repo.NewAuditRepo(database)
		userRepo := repo.NewUserRepo(database)
		dispatcher := notify.NewDispatcher(userRepo, cfg.MailFnURL, cfg.MailFnToken)
		go func() {
			if err := scheduler.Run(cfg.AuditDigestCron, auditRepo, dispatcher); err != nil {
				slog.Error("audit digest scheduler failed", "error", err)
			}
		}()
	}

	r := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting HTTPS server", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting HTTP server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
