// The server exposes the HTTP survey intake. Submissions are persisted and
// then rendered and delivered in the request path, with a per-step result
// message returned to the caller.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pitstopgolf/server/pkg/bootstrap"
	"github.com/pitstopgolf/server/pkg/delivery/email"
	"github.com/pitstopgolf/server/pkg/delivery/whatsapp"
	"github.com/pitstopgolf/server/pkg/domain/report"
	"github.com/pitstopgolf/server/pkg/infrastructure/sentry"
	"github.com/pitstopgolf/server/pkg/server"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}
	logger := bootstrap.NewLogger("server")

	sentry.Init(sentry.Config{
		DSN:         svc.Config.SentryDSN,
		Environment: svc.Config.Environment,
		ServerName:  "server",
	}, logger)
	defer sentry.Flush(2 * time.Second)

	mailer := email.NewSender(email.Config{
		Host:     svc.Config.SMTPHost,
		Port:     svc.Config.SMTPPort,
		Username: svc.Config.SMTPUsername,
		Password: svc.Config.SMTPPassword,
		From:     svc.Config.SMTPFrom,
	}, logger)

	msgr, err := whatsapp.NewClient(ctx, svc.Config.WhatsAppDB, logger)
	if err != nil {
		logger.Error("Failed to initialize WhatsApp client", "error", err)
		os.Exit(1)
	}
	if err := msgr.Connect(ctx); err != nil {
		logger.Error("Failed to connect WhatsApp client", "error", err)
		os.Exit(1)
	}
	defer msgr.Disconnect()

	srv := &server.Server{
		DB:       svc.DB,
		Renderer: report.NewRenderer(svc.Config.ReportOutputDir, logger),
		Mailer:   mailer,
		Msgr:     msgr,
		Logger:   logger,
	}

	httpServer := &http.Server{
		Addr:    ":" + svc.Config.Port,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server listening", "port", svc.Config.Port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
