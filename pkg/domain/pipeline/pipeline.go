// Package pipeline drives a submission from pendente to a terminal status:
// mark processing, validate, resolve customer/cart, render the report,
// attempt each delivery channel, record the outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	shared "github.com/pitstopgolf/server/pkg"
	"github.com/pitstopgolf/server/pkg/domain/resolver"
	infrapubsub "github.com/pitstopgolf/server/pkg/infrastructure/pubsub"
	"github.com/pitstopgolf/server/pkg/infrastructure/sentry"
	"github.com/pitstopgolf/server/pkg/types"
)

// deliveryOutcome is one channel's result for one item.
type deliveryOutcome struct {
	email types.EmailStatus
	whats types.WhatsStatus
}

type Pipeline struct {
	DB       shared.Database
	Resolver *resolver.Resolver
	Renderer shared.Renderer
	Mailer   shared.Mailer
	Msgr     shared.Messenger

	// Optional: archival copy of each rendered report.
	Store  shared.BlobStore
	Bucket string

	// Optional: terminal-status event publishing.
	Pub shared.Publisher

	Logger *slog.Logger
}

func New(db shared.Database, res *resolver.Resolver, renderer shared.Renderer, mailer shared.Mailer, msgr shared.Messenger, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		DB:       db,
		Resolver: res,
		Renderer: renderer,
		Mailer:   mailer,
		Msgr:     msgr,
		Logger:   logger,
	}
}

// Process runs the full state machine for one submission. It never returns
// an error: every outcome is recorded in the submission's status fields, and
// a failed finalize write is logged and dropped (the item counts as
// drained).
func (p *Pipeline) Process(ctx context.Context, sub *types.Submission) {
	log := p.Logger.With("submission_id", sub.ID, "run_id", uuid.NewString())
	log.Info("Processing pending submission")

	// Persist the pendente -> processando transition before any other work:
	// a crash after this point shows up as a stuck item, not a lost one.
	started := time.Now()
	if err := p.DB.UpdateSubmission(ctx, sub.ID, map[string]interface{}{
		"status":             string(types.StatusProcessing),
		"processadoInicioEm": started,
	}); err != nil {
		p.finalizeError(ctx, log, sub.ID, fmt.Errorf("falha ao marcar processamento: %w", err))
		return
	}

	outcome, artifact, err := p.run(ctx, log, sub)
	if err != nil {
		p.finalizeError(ctx, log, sub.ID, err)
		return
	}

	p.finalizeSuccess(ctx, log, sub.ID, outcome)

	if artifact != nil {
		p.archive(ctx, log, sub.ID, artifact)
	}
}

// run executes validate -> resolve -> render -> deliver. A returned error is
// fatal to the item; channel failures are folded into the outcome instead.
func (p *Pipeline) run(ctx context.Context, log *slog.Logger, sub *types.Submission) (deliveryOutcome, *types.ReportArtifact, error) {
	outcome := deliveryOutcome{email: types.EmailNotApplicable, whats: types.WhatsNotSent}
	client := sub.Survey.Client

	if strings.TrimSpace(client.Name) == "" || strings.TrimSpace(client.Phone) == "" {
		return outcome, nil, &ValidationError{Reason: fmt.Sprintf("questionário %s sem nome ou fone", sub.ID)}
	}

	if _, err := p.Resolver.Resolve(ctx, &sub.Survey); err != nil {
		return outcome, nil, &ResolutionError{Err: err}
	}

	artifact, err := p.Renderer.Render(ctx, &sub.Survey, sub.ID)
	if err != nil {
		// No artifact means nothing to deliver; abort the whole item.
		return outcome, nil, &RenderError{Err: err}
	}
	log.Info("PDF generated", "path", artifact.Path)

	// The two channels are independent: one failing must not skip the other.
	if client.Email != "" {
		if err := p.Mailer.Send(ctx, client.Email, client.Name, artifact.Slug, artifact.Path); err != nil {
			cerr := &ChannelError{Channel: "email", Err: err}
			log.Error("Email delivery failed", "error", cerr)
			outcome.email = types.EmailError
		} else {
			log.Info("Email sent", "address", client.Email)
			outcome.email = types.EmailSuccess
		}
	}

	if client.Phone != "" {
		if err := p.Msgr.Send(ctx, client.Phone, client.Name, artifact.Path); err != nil {
			cerr := &ChannelError{Channel: "whatsapp", Err: err}
			log.Error("WhatsApp delivery failed", "error", cerr)
			outcome.whats = types.WhatsError
		} else {
			log.Info("WhatsApp sent", "fone", client.Phone)
			outcome.whats = types.WhatsSuccess
		}
	} else {
		// Unreachable while validation requires a phone; kept for the
		// contract's sake.
		outcome.whats = types.WhatsNoNumber
	}

	return outcome, artifact, nil
}

// finalizeSuccess records the terminal sucesso status. Individual channel
// failures do not demote the item: rendering succeeded, and the per-channel
// fields carry the rest.
func (p *Pipeline) finalizeSuccess(ctx context.Context, log *slog.Logger, id string, outcome deliveryOutcome) {
	update := map[string]interface{}{
		"status":          string(types.StatusSuccess),
		"pdfGerado":       true,
		"emailStatus":     string(outcome.email),
		"whatsStatus":     string(outcome.whats),
		"processadoFimEm": time.Now(),
	}
	if err := p.DB.UpdateSubmission(ctx, id, update); err != nil {
		// The in-memory record of this item is gone once this write fails;
		// no retry, only noise.
		log.Error("CRITICAL: failed to write final status", "error", err)
		sentry.CaptureException(err, map[string]interface{}{"submission_id": id}, log)
		return
	}
	log.Info("Submission processed", "email_status", outcome.email, "whats_status", outcome.whats)

	p.publish(ctx, log, infrapubsub.SubmissionProcessed{
		SubmissionID: id,
		Status:       types.StatusSuccess,
		EmailStatus:  outcome.email,
		WhatsStatus:  outcome.whats,
	})
}

func (p *Pipeline) finalizeError(ctx context.Context, log *slog.Logger, id string, ferr error) {
	log.Error("Submission processing failed", "error", ferr)
	sentry.CaptureException(ferr, map[string]interface{}{"submission_id": id}, log)

	update := map[string]interface{}{
		"status":          string(types.StatusError),
		"mensagemErro":    ferr.Error(),
		"processadoFimEm": time.Now(),
	}
	if err := p.DB.UpdateSubmission(ctx, id, update); err != nil {
		log.Error("CRITICAL: failed to write error status", "error", err)
		sentry.CaptureException(err, map[string]interface{}{"submission_id": id}, log)
		return
	}

	p.publish(ctx, log, infrapubsub.SubmissionProcessed{
		SubmissionID: id,
		Status:       types.StatusError,
		ErrorMessage: ferr.Error(),
	})
}

// publish emits the terminal-status event. Best effort: consumers are
// dashboards, not the source of truth.
func (p *Pipeline) publish(ctx context.Context, log *slog.Logger, data infrapubsub.SubmissionProcessed) {
	if p.Pub == nil {
		return
	}
	e, err := infrapubsub.NewCloudEvent(infrapubsub.EventSourceListener, infrapubsub.EventTypeSubmissionProcessed, data)
	if err != nil {
		log.Warn("Failed to build processed event", "error", err)
		return
	}
	if _, err := p.Pub.PublishCloudEvent(ctx, shared.TopicSubmissionProcessed, e); err != nil {
		log.Warn("Failed to publish processed event", "error", err)
	}
}

// archive uploads a copy of the rendered report. Best effort: the local file
// already reached the customer.
func (p *Pipeline) archive(ctx context.Context, log *slog.Logger, id string, artifact *types.ReportArtifact) {
	if p.Store == nil || p.Bucket == "" {
		return
	}
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		log.Warn("Failed to read report for archival", "error", err)
		return
	}
	object := fmt.Sprintf("reports/%s/%s", id, filepath.Base(artifact.Path))
	if err := p.Store.Write(ctx, p.Bucket, object, data); err != nil {
		log.Warn("Failed to archive report", "bucket", p.Bucket, "object", object, "error", err)
		return
	}
	log.Info("Report archived", "bucket", p.Bucket, "object", object)
}
