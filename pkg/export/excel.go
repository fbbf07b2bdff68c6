// Package export builds the denormalized spreadsheet view of processed
// submissions, grouped by customer and cart. Purely a reporting surface; it
// feeds nothing back into the pipeline.
package export

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	shared "github.com/pitstopgolf/server/pkg"
	"github.com/pitstopgolf/server/pkg/types"
)

// ErrNoData means there were no successfully processed submissions to
// report on.
var ErrNoData = errors.New("nenhum dado encontrado para gerar o relatório")

const (
	sheetSubmissions = "Questionários"
	sheetCustomers   = "Clientes"
)

type column struct {
	Header string
	Width  float64
	Value  func(*types.Submission) interface{}
}

func columns() []column {
	return []column{
		{"Status Processamento", 15, func(s *types.Submission) interface{} { return string(s.Status) }},
		{"Data Envio", 20, func(s *types.Submission) interface{} { return formatTime(&s.SubmittedAt) }},
		{"Funcionário", 20, func(s *types.Submission) interface{} { return s.Survey.Intro.Employee }},
		{"Clube", 25, func(s *types.Submission) interface{} { return s.Survey.Intro.Club }},
		{"Cidade", 20, func(s *types.Submission) interface{} { return s.Survey.Intro.City }},
		{"Estado", 10, func(s *types.Submission) interface{} { return s.Survey.Intro.State }},
		{"Nome Cliente", 30, func(s *types.Submission) interface{} { return s.Survey.Client.Name }},
		{"Telefone Cliente", 20, func(s *types.Submission) interface{} { return s.Survey.Client.Phone }},
		{"Email Cliente", 30, func(s *types.Submission) interface{} { return s.Survey.Client.Email }},
		{"Marca Carrinho", 15, func(s *types.Submission) interface{} { return s.Survey.Cart.Brand }},
		{"Modelo Carrinho", 15, func(s *types.Submission) interface{} { return s.Survey.Cart.Model }},
		{"Num Carrinho", 15, func(s *types.Submission) interface{} { return s.Survey.Cart.Number }},
		{"Marca Bateria", 20, func(s *types.Submission) interface{} { return s.Survey.Battery.Brand }},
		{"Tipo Bateria", 15, func(s *types.Submission) interface{} { return s.Survey.Battery.Type }},
		{"Tensão Bateria", 15, func(s *types.Submission) interface{} { return s.Survey.Battery.Voltage }},
		{"Qtd Bateria", 10, func(s *types.Submission) interface{} { return s.Survey.Battery.Quantity }},
		{"Verif: Caixa", 15, func(s *types.Submission) interface{} { return s.Survey.BatteryCheck.Case }},
		{"Verif: Parafusos", 15, func(s *types.Submission) interface{} { return s.Survey.BatteryCheck.Screws }},
		{"Verif: Terminais", 15, func(s *types.Submission) interface{} { return s.Survey.BatteryCheck.Terminals }},
		{"Verif: Polos", 15, func(s *types.Submission) interface{} { return s.Survey.BatteryCheck.Poles }},
		{"Verif: Nível", 15, func(s *types.Submission) interface{} { return s.Survey.BatteryCheck.Level }},
		{"Verif: Tensões", 30, func(s *types.Submission) interface{} { return strings.Join(s.Survey.VoltageCheck.Readings, ", ") }},
		{"Comentário", 40, func(s *types.Submission) interface{} { return s.Survey.Comment.Comment }},
		{"PDF Gerado", 12, func(s *types.Submission) interface{} { return boolLabel(s.PDFGenerated) }},
		{"Status Email", 15, func(s *types.Submission) interface{} { return string(s.EmailStatus) }},
		{"Status WhatsApp", 15, func(s *types.Submission) interface{} { return string(s.WhatsStatus) }},
		{"Data Processamento Fim", 20, func(s *types.Submission) interface{} { return formatTime(s.ProcessingEndedAt) }},
		{"Mensagem Erro", 40, func(s *types.Submission) interface{} { return s.ErrorMessage }},
	}
}

func boolLabel(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.Local
	}
	return t.In(loc).Format("02/01/2006 15:04:05")
}

// Build assembles the workbook in memory: one flat sheet per submission,
// ordered by customer then cart so rows for the same owner sit together, and
// a per-customer summary sheet.
func Build(subs []*types.Submission) (*excelize.File, error) {
	if len(subs) == 0 {
		return nil, ErrNoData
	}

	sorted := make([]*types.Submission, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		an, bn := strings.ToLower(a.Survey.Client.Name), strings.ToLower(b.Survey.Client.Name)
		if an != bn {
			return an < bn
		}
		if a.Survey.Client.Phone != b.Survey.Client.Phone {
			return a.Survey.Client.Phone < b.Survey.Client.Phone
		}
		return a.Survey.Cart.Number < b.Survey.Cart.Number
	})

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetSubmissions)

	cols := columns()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, col := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetSubmissions, name, name, col.Width); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetSubmissions, cell, col.Header); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(sheetSubmissions, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for row, sub := range sorted {
		for i, col := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetSubmissions, cell, col.Value(sub)); err != nil {
				return nil, err
			}
		}
	}

	if err := buildCustomerSheet(f, sorted, headerStyle); err != nil {
		return nil, err
	}

	return f, nil
}

type customerGroup struct {
	name     string
	phone    string
	email    string
	carts    []string
	count    int
	lastDone *time.Time
}

func buildCustomerSheet(f *excelize.File, sorted []*types.Submission, headerStyle int) error {
	if _, err := f.NewSheet(sheetCustomers); err != nil {
		return err
	}

	headers := []struct {
		title string
		width float64
	}{
		{"Nome Cliente", 30},
		{"Telefone", 20},
		{"Email", 30},
		{"Carrinhos", 40},
		{"Questionários", 14},
		{"Último Processamento", 22},
	}
	for i, h := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetCustomers, name, name, h.width); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetCustomers, cell, h.title); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetCustomers, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	// Input is already ordered by customer; groups stay in that order.
	var groups []*customerGroup
	byPhone := map[string]*customerGroup{}
	for _, sub := range sorted {
		client := sub.Survey.Client
		g, ok := byPhone[client.Phone]
		if !ok {
			g = &customerGroup{name: client.Name, phone: client.Phone, email: client.Email}
			byPhone[client.Phone] = g
			groups = append(groups, g)
		}
		g.count++
		cart := strings.TrimSpace(fmt.Sprintf("%s %s", sub.Survey.Cart.Brand, sub.Survey.Cart.Number))
		if cart != "" && !contains(g.carts, cart) {
			g.carts = append(g.carts, cart)
		}
		if sub.ProcessingEndedAt != nil && (g.lastDone == nil || sub.ProcessingEndedAt.After(*g.lastDone)) {
			g.lastDone = sub.ProcessingEndedAt
		}
	}

	for row, g := range groups {
		values := []interface{}{
			g.name, g.phone, g.email,
			strings.Join(g.carts, ", "),
			g.count,
			formatTime(g.lastDone),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetCustomers, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Export reads every successfully processed submission and writes the
// workbook to path.
func Export(ctx context.Context, db shared.Database, path string) error {
	subs, err := db.ListSubmissionsByStatus(ctx, types.StatusSuccess)
	if err != nil {
		return fmt.Errorf("list submissions: %w", err)
	}

	f, err := Build(subs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
