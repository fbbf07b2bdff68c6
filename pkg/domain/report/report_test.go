package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitstopgolf/server/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSurvey(comment string) *types.SurveyData {
	return &types.SurveyData{
		Intro:  types.Intro{Employee: "Carlos", City: "São Paulo", State: "SP", Club: "Clube Alpha"},
		Client: types.Client{Name: "João Conceição", Phone: "11987654321", Email: "joao@example.com"},
		Cart:   types.Cart{Brand: "Club Car", Model: "Precedent", Number: "42"},
		Battery: types.Battery{
			Brand: "Moura", Type: "Chumbo", Voltage: "8V", Quantity: "6",
		},
		BatteryCheck: types.BatteryCheck{
			Case: "OK", Screws: "OK", Terminals: "Oxidado", Poles: "OK", Level: "Baixo",
		},
		VoltageCheck: types.VoltageCheck{Readings: []string{"8.1", "7.9", "8.0", "abc"}},
		Comment:      types.Comment{Comment: comment},
	}
}

func TestRenderWritesReport(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, testLogger())

	artifact, err := r.Render(context.Background(), testSurvey(""), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "joao_conceicao", artifact.Slug)
	assert.Equal(t, filepath.Join(dir, "Relatorio_joao_conceicao_abc123.pdf"), artifact.Path)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))

	// No temp file left behind.
	_, err = os.Stat(artifact.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestRenderCommentsVariant(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, testLogger())

	artifact, err := r.Render(context.Background(), testSurvey("Trocar bateria 3 na próxima visita."), "abc123")
	require.NoError(t, err)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
}

func TestRenderOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, testLogger())

	first, err := r.Render(context.Background(), testSurvey(""), "abc123")
	require.NoError(t, err)
	second, err := r.Render(context.Background(), testSurvey(""), "abc123")
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
}

func TestRenderCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pdfs")
	r := NewRenderer(dir, testLogger())

	_, err := r.Render(context.Background(), testSurvey(""), "abc123")
	require.NoError(t, err)
}
