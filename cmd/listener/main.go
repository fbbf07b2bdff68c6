// The listener watches Firestore for pending survey submissions and drives
// each one through the processing pipeline: customer/cart resolution, PDF
// rendering, email and WhatsApp delivery, terminal status bookkeeping.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pitstopgolf/server/pkg/bootstrap"
	"github.com/pitstopgolf/server/pkg/delivery/email"
	"github.com/pitstopgolf/server/pkg/delivery/whatsapp"
	"github.com/pitstopgolf/server/pkg/domain/pipeline"
	"github.com/pitstopgolf/server/pkg/domain/report"
	"github.com/pitstopgolf/server/pkg/domain/resolver"
	"github.com/pitstopgolf/server/pkg/infrastructure/sentry"
	"github.com/pitstopgolf/server/pkg/types"
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
	logger := bootstrap.NewLogger("listener")

	sentry.Init(sentry.Config{
		DSN:         svc.Config.SentryDSN,
		Environment: svc.Config.Environment,
		ServerName:  "listener",
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

	renderer := report.NewRenderer(svc.Config.ReportOutputDir, logger)

	pipe := pipeline.New(svc.DB, resolver.New(svc.DB, logger), renderer, mailer, msgr, logger)
	pipe.Store = svc.Store
	pipe.Bucket = svc.Config.GCSArtifactBucket
	pipe.Pub = svc.Pub

	queue := pipeline.NewQueue(pipe.Process)

	logger.Info("Listening for pending submissions")
	err = svc.DB.ListenPendingSubmissions(ctx, func(sub *types.Submission) {
		logger.Info("Pending submission detected", "submission_id", sub.ID)
		queue.Enqueue(sub)
		// Processing runs on its own context: the in-flight item must still
		// be able to write its final status after the signal context cancels.
		queue.Drain(context.Background())
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Listener stopped unexpectedly", "error", err)
		sentry.CaptureException(err, nil, logger)
	}

	logger.Info("Shutting down, waiting for in-flight work")
	queue.Close()
	logger.Info("Listener stopped")
}
