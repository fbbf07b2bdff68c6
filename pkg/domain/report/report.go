// Package report renders the filled battery-inspection PDF for one survey
// response, with the voltage readings embedded as a bar chart.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pitstopgolf/server/pkg/types"
)

// fieldOrder fixes the fill order so pages render identically run to run.
var fieldOrder = []string{
	"nome", "clube", "email", "fone", "data", "cidade",
	"marca", "modelo", "numero",
	"marcaBat", "quantidade", "tipo", "tensao",
	"caixa", "parafusos", "terminais", "polos", "nivel",
	"comentarios",
}

type Renderer struct {
	outputDir string
	log       *slog.Logger
}

func NewRenderer(outputDir string, log *slog.Logger) *Renderer {
	return &Renderer{outputDir: outputDir, log: log.With("component", "report")}
}

// Render produces the report PDF for one survey at a deterministic path
// derived from the customer-name slug and ref. An existing file at that path
// is overwritten; a failed render never leaves a partial file behind.
func (r *Renderer) Render(ctx context.Context, survey *types.SurveyData, ref string) (*types.ReportArtifact, error) {
	hasComments := strings.TrimSpace(survey.Comment.Comment) != ""
	lay := standardLayout()
	if hasComments {
		lay = commentsLayout()
	}

	values := fieldValues(survey, hasComments)

	chartPNG, err := voltageChart(survey.VoltageCheck.Readings)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := r.renderPage(lay, values, chartPNG)
	if err != nil {
		return nil, err
	}

	safeName := SafeName(survey.Client.Name)
	outputPath := filepath.Join(r.outputDir, fmt.Sprintf("Relatorio_%s_%s.pdf", safeName, ref))

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Write to a temp file and rename so a failure mid-write cannot leave a
	// truncated report at the final path.
	tmp := outputPath + ".tmp"
	if err := os.WriteFile(tmp, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("write report: %w", err)
	}

	r.log.Info("Report rendered", "path", outputPath, "template", lay.Name)

	return &types.ReportArtifact{Path: outputPath, Slug: safeName}, nil
}

func fieldValues(survey *types.SurveyData, hasComments bool) map[string]string {
	values := map[string]string{
		"nome":       survey.Client.Name,
		"clube":      survey.Intro.Club,
		"email":      survey.Client.Email,
		"fone":       DisplayPhone(survey.Client.Phone),
		"data":       time.Now().Format("02/01/2006"),
		"cidade":     fmt.Sprintf("%s - %s", survey.Intro.City, survey.Intro.State),
		"marca":      survey.Cart.Brand,
		"modelo":     survey.Cart.Model,
		"numero":     survey.Cart.Number,
		"marcaBat":   survey.Battery.Brand,
		"quantidade": survey.Battery.Quantity,
		"tipo":       survey.Battery.Type,
		"tensao":     survey.Battery.Voltage,
		"caixa":      survey.BatteryCheck.Case,
		"parafusos":  survey.BatteryCheck.Screws,
		"terminais":  survey.BatteryCheck.Terminals,
		"polos":      survey.BatteryCheck.Poles,
		"nivel":      survey.BatteryCheck.Level,
	}
	if hasComments {
		values["comentarios"] = survey.Comment.Comment
	}
	return values
}

func (r *Renderer) renderPage(lay layout, values map[string]string, chartPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(60, 80, tr("Relatório de Inspeção de Baterias"))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(60, 98, "Pit Stop Golf")

	for _, name := range fieldOrder {
		value, ok := values[name]
		if !ok {
			continue
		}
		slot, ok := lay.Slots[name]
		if !ok {
			// The template variant simply lacks this field; keep going.
			r.log.Warn("Template field not found, skipping", "field", name, "template", lay.Name)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(slot.X-55, slot.Y, tr(slot.Label+":"))

		style := ""
		if slot.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.Text(slot.X, slot.Y, tr(value))
	}

	// Chart offsets are bottom-anchored; fpdf draws from the top.
	chartTop := pageHeight - lay.ChartBottom - chartHeight
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("voltage-chart", opts, bytes.NewReader(chartPNG))
	pdf.ImageOptions("voltage-chart", chartX, chartTop, chartWidth, chartHeight, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
