package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/pitstopgolf/server/pkg"
	"github.com/pitstopgolf/server/pkg/domain/resolver"
	"github.com/pitstopgolf/server/pkg/testing/mocks"
	"github.com/pitstopgolf/server/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSubmission() *types.Submission {
	return &types.Submission{
		ID: "sub-1",
		Survey: types.SurveyData{
			Client: types.Client{
				Name:  "Ana",
				Phone: "11987654321",
				Email: "ana@example.com",
			},
			Cart:         types.Cart{Brand: "Club Car", Number: "42"},
			VoltageCheck: types.VoltageCheck{Readings: []string{"12.1", "11.9"}},
		},
		Status: types.StatusPending,
	}
}

// updateRecorder collects every UpdateSubmission payload in call order.
type updateRecorder struct {
	mu      sync.Mutex
	updates []map[string]interface{}
}

func (r *updateRecorder) record(_ context.Context, _ string, data map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, data)
	return nil
}

func (r *updateRecorder) last(t *testing.T) map[string]interface{} {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.updates)
	return r.updates[len(r.updates)-1]
}

func newTestPipeline(db *mocks.MockDatabase, renderer *mocks.MockRenderer, mailer *mocks.MockMailer, msgr *mocks.MockMessenger) *Pipeline {
	log := testLogger()
	return New(db, resolver.New(db, log), renderer, mailer, msgr, log)
}

func TestProcessSuccess(t *testing.T) {
	rec := &updateRecorder{}
	db := &mocks.MockDatabase{UpdateSubmissionFunc: rec.record}

	var mailedTo, messagedPhone string
	mailer := &mocks.MockMailer{SendFunc: func(_ context.Context, address, _, _, _ string) error {
		mailedTo = address
		return nil
	}}
	msgr := &mocks.MockMessenger{SendFunc: func(_ context.Context, phone, _, _ string) error {
		messagedPhone = phone
		return nil
	}}

	p := newTestPipeline(db, &mocks.MockRenderer{}, mailer, msgr)
	p.Process(context.Background(), testSubmission())

	require.Len(t, rec.updates, 2)
	assert.Equal(t, string(types.StatusProcessing), rec.updates[0]["status"])
	assert.Contains(t, rec.updates[0], "processadoInicioEm")

	final := rec.last(t)
	assert.Equal(t, string(types.StatusSuccess), final["status"])
	assert.Equal(t, true, final["pdfGerado"])
	assert.Equal(t, string(types.EmailSuccess), final["emailStatus"])
	assert.Equal(t, string(types.WhatsSuccess), final["whatsStatus"])
	assert.Contains(t, final, "processadoFimEm")

	assert.Equal(t, "ana@example.com", mailedTo)
	assert.Equal(t, "11987654321", messagedPhone)
}

func TestProcessValidationFailureSkipsEverything(t *testing.T) {
	rec := &updateRecorder{}
	db := &mocks.MockDatabase{UpdateSubmissionFunc: rec.record}

	rendered := false
	renderer := &mocks.MockRenderer{RenderFunc: func(_ context.Context, _ *types.SurveyData, _ string) (*types.ReportArtifact, error) {
		rendered = true
		return nil, nil
	}}
	delivered := false
	mailer := &mocks.MockMailer{SendFunc: func(_ context.Context, _, _, _, _ string) error {
		delivered = true
		return nil
	}}
	msgr := &mocks.MockMessenger{SendFunc: func(_ context.Context, _, _, _ string) error {
		delivered = true
		return nil
	}}

	sub := testSubmission()
	sub.Survey.Client.Name = "   "

	p := newTestPipeline(db, renderer, mailer, msgr)
	p.Process(context.Background(), sub)

	final := rec.last(t)
	assert.Equal(t, string(types.StatusError), final["status"])
	assert.Contains(t, final["mensagemErro"], "sem nome ou fone")
	assert.NotContains(t, final, "pdfGerado")
	assert.False(t, rendered)
	assert.False(t, delivered)
}

func TestProcessRenderFailureBlocksDelivery(t *testing.T) {
	rec := &updateRecorder{}
	db := &mocks.MockDatabase{UpdateSubmissionFunc: rec.record}

	renderer := &mocks.MockRenderer{RenderFunc: func(_ context.Context, _ *types.SurveyData, _ string) (*types.ReportArtifact, error) {
		return nil, errors.New("chart blew up")
	}}
	delivered := false
	mailer := &mocks.MockMailer{SendFunc: func(_ context.Context, _, _, _, _ string) error {
		delivered = true
		return nil
	}}
	msgr := &mocks.MockMessenger{SendFunc: func(_ context.Context, _, _, _ string) error {
		delivered = true
		return nil
	}}

	p := newTestPipeline(db, renderer, mailer, msgr)
	p.Process(context.Background(), testSubmission())

	final := rec.last(t)
	assert.Equal(t, string(types.StatusError), final["status"])
	assert.Contains(t, final["mensagemErro"], "falha ao gerar PDF")
	assert.False(t, delivered)
}

func TestProcessPartialChannelFailureStillSucceeds(t *testing.T) {
	rec := &updateRecorder{}
	db := &mocks.MockDatabase{UpdateSubmissionFunc: rec.record}

	mailer := &mocks.MockMailer{SendFunc: func(_ context.Context, _, _, _, _ string) error {
		return errors.New("smtp timeout")
	}}
	whatsSent := false
	msgr := &mocks.MockMessenger{SendFunc: func(_ context.Context, _, _, _ string) error {
		whatsSent = true
		return nil
	}}

	p := newTestPipeline(db, &mocks.MockRenderer{}, mailer, msgr)
	p.Process(context.Background(), testSubmission())

	final := rec.last(t)
	assert.Equal(t, string(types.StatusSuccess), final["status"])
	assert.Equal(t, string(types.EmailError), final["emailStatus"])
	assert.Equal(t, string(types.WhatsSuccess), final["whatsStatus"])
	assert.True(t, whatsSent, "email failure must not skip WhatsApp")
}

func TestProcessWithoutEmailAddress(t *testing.T) {
	rec := &updateRecorder{}
	db := &mocks.MockDatabase{UpdateSubmissionFunc: rec.record}

	mailed := false
	mailer := &mocks.MockMailer{SendFunc: func(_ context.Context, _, _, _, _ string) error {
		mailed = true
		return nil
	}}

	sub := testSubmission()
	sub.Survey.Client.Email = ""

	p := newTestPipeline(db, &mocks.MockRenderer{}, mailer, &mocks.MockMessenger{})
	p.Process(context.Background(), sub)

	final := rec.last(t)
	assert.Equal(t, string(types.StatusSuccess), final["status"])
	assert.Equal(t, string(types.EmailNotApplicable), final["emailStatus"])
	assert.False(t, mailed)
}

func TestProcessMarkProcessingFailure(t *testing.T) {
	rec := &updateRecorder{}
	first := true
	db := &mocks.MockDatabase{UpdateSubmissionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
		if first {
			first = false
			return errors.New("firestore unavailable")
		}
		return rec.record(ctx, id, data)
	}}

	rendered := false
	renderer := &mocks.MockRenderer{RenderFunc: func(_ context.Context, _ *types.SurveyData, _ string) (*types.ReportArtifact, error) {
		rendered = true
		return nil, nil
	}}

	p := newTestPipeline(db, renderer, &mocks.MockMailer{}, &mocks.MockMessenger{})
	p.Process(context.Background(), testSubmission())

	final := rec.last(t)
	assert.Equal(t, string(types.StatusError), final["status"])
	assert.Contains(t, final["mensagemErro"], "falha ao marcar processamento")
	assert.False(t, rendered)
}

func TestProcessResolutionFailure(t *testing.T) {
	rec := &updateRecorder{}
	db := &mocks.MockDatabase{
		UpdateSubmissionFunc: rec.record,
		FindCustomerByPhoneFunc: func(_ context.Context, _ string) (*types.Customer, error) {
			return nil, errors.New("query failed")
		},
	}

	p := newTestPipeline(db, &mocks.MockRenderer{}, &mocks.MockMailer{}, &mocks.MockMessenger{})
	p.Process(context.Background(), testSubmission())

	final := rec.last(t)
	assert.Equal(t, string(types.StatusError), final["status"])
	assert.Contains(t, final["mensagemErro"], "falha ao resolver cliente/carrinho")
}

func TestProcessPublishesTerminalEvent(t *testing.T) {
	db := &mocks.MockDatabase{}

	var published event.Event
	var topic string
	pub := &mocks.MockPublisher{PublishCloudEventFunc: func(_ context.Context, tp string, e event.Event) (string, error) {
		topic = tp
		published = e
		return "msg-1", nil
	}}

	p := newTestPipeline(db, &mocks.MockRenderer{}, &mocks.MockMailer{}, &mocks.MockMessenger{})
	p.Pub = pub
	p.Process(context.Background(), testSubmission())

	assert.Equal(t, shared.TopicSubmissionProcessed, topic)
	assert.Equal(t, "br.com.pitstopgolf.submission.processed", published.Type())
}

func TestProcessArchivesReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Relatorio_ana_sub-1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-fake"), 0o644))

	db := &mocks.MockDatabase{}
	renderer := &mocks.MockRenderer{RenderFunc: func(_ context.Context, _ *types.SurveyData, _ string) (*types.ReportArtifact, error) {
		return &types.ReportArtifact{Path: path, Slug: "ana"}, nil
	}}

	var gotBucket, gotObject string
	store := &mocks.MockBlobStore{WriteFunc: func(_ context.Context, bucket, object string, data []byte) error {
		gotBucket = bucket
		gotObject = object
		assert.Equal(t, []byte("%PDF-fake"), data)
		return nil
	}}

	p := newTestPipeline(db, renderer, &mocks.MockMailer{}, &mocks.MockMessenger{})
	p.Store = store
	p.Bucket = "reports-bucket"
	p.Process(context.Background(), testSubmission())

	assert.Equal(t, "reports-bucket", gotBucket)
	assert.Equal(t, "reports/sub-1/Relatorio_ana_sub-1.pdf", gotObject)
}
