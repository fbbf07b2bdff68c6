// The exporter writes every successfully processed submission to an Excel
// workbook. Meant to be run on demand or from a scheduler.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pitstopgolf/server/pkg/bootstrap"
	"github.com/pitstopgolf/server/pkg/export"
)

func main() {
	_ = godotenv.Load()

	out := flag.String("out", "questionarios.xlsx", "output workbook path")
	flag.Parse()

	ctx := context.Background()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}
	logger := bootstrap.NewLogger("exporter")

	if err := export.Export(ctx, svc.DB, *out); err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Workbook written", "path", *out)
}
