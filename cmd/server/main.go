package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formchat/backend/internal/config"
	"github.com/formchat/backend/internal/handler"
	"github.com/formchat/backend/internal/logging"
	"github.com/formchat/backend/internal/repository"
	"github.com/formchat/backend/internal/service"
	"github.com/formchat/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logging.Setup(cfg.LogLevel)

	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		logging.Fatal("failed to open database", "error", err, "path", cfg.DatabasePath)
	}
	defer db.Close()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		logging.Fatal("failed to ensure schema", "error", err)
	}
	// Column backfill for old database files is best-effort: a failure
	// here leaves the schema stale but the server running.
	if err := repository.ExtendSchema(ctx, db); err != nil {
		slog.Warn("schema extension failed", "error", err)
	}

	userRepo := repository.NewSqliteUserRepository(db)
	guestMessageRepo := repository.NewSqliteGuestMessageRepository(db)
	directMessageRepo := repository.NewSqliteDirectMessageRepository(db)

	authService := service.NewAuthService(userRepo, cfg.AdminUsername, cfg.AdminPassword)
	guestMessageService := service.NewGuestMessageService(guestMessageRepo, userRepo)
	messageService := service.NewMessageService(directMessageRepo, userRepo)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)

	healthHandler := handler.NewHealthHandler(userRepo)
	authHandler := handler.NewAuthHandler(authService, sessionSecret)
	guestMessageHandler := handler.NewGuestMessageHandler(guestMessageService)
	messageHandler := handler.NewMessageHandler(messageService)

	withSession := auth.WithSession(sessionSecret)
	requireUser := auth.RequireUser(sessionSecret)
	requireAdmin := auth.RequireAdmin(sessionSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Contact form: anonymous or attributed to the logged-in user.
	mux.Handle("GET /{$}", withSession(http.HandlerFunc(guestMessageHandler.Form)))
	mux.Handle("POST /{$}", withSession(http.HandlerFunc(guestMessageHandler.Submit)))

	// Session lifecycle.
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /login_admin", authHandler.AdminLogin)
	mux.HandleFunc("GET /logout", authHandler.Logout)

	// Admin view over guest messages.
	mux.Handle("GET /admin", requireAdmin(http.HandlerFunc(guestMessageHandler.AdminList)))
	mux.Handle("POST /delete/{id}", requireAdmin(http.HandlerFunc(guestMessageHandler.Delete)))

	// Direct messaging.
	mux.Handle("GET /messages", requireUser(http.HandlerFunc(messageHandler.List)))
	mux.Handle("GET /messages/{username}", requireUser(http.HandlerFunc(messageHandler.Thread)))
	mux.Handle("POST /messages/{username}", requireUser(http.HandlerFunc(messageHandler.Send)))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.RequestLogger(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
