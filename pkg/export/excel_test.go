package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitstopgolf/server/pkg/testing/mocks"
	"github.com/pitstopgolf/server/pkg/types"
)

func submission(name, phone, cartNumber string) *types.Submission {
	ended := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	return &types.Submission{
		ID: "sub-" + cartNumber,
		Survey: types.SurveyData{
			Intro:        types.Intro{Employee: "Carlos", City: "São Paulo", State: "SP", Club: "Clube Alpha"},
			Client:       types.Client{Name: name, Phone: phone, Email: "x@example.com"},
			Cart:         types.Cart{Brand: "Club Car", Number: cartNumber},
			Battery:      types.Battery{Brand: "Moura", Type: "Chumbo", Voltage: "8V", Quantity: "6"},
			VoltageCheck: types.VoltageCheck{Readings: []string{"8.1", "7.9"}},
		},
		Status:            types.StatusSuccess,
		SubmittedAt:       ended.Add(-time.Hour),
		ProcessingEndedAt: &ended,
		PDFGenerated:      true,
		EmailStatus:       types.EmailSuccess,
		WhatsStatus:       types.WhatsSuccess,
	}
}

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBuildSubmissionRows(t *testing.T) {
	f, err := Build([]*types.Submission{
		submission("Bruno", "11911112222", "7"),
		submission("Ana", "11987654321", "42"),
	})
	require.NoError(t, err)
	defer f.Close()

	// Header row.
	v, err := f.GetCellValue(sheetSubmissions, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Status Processamento", v)

	// Rows sorted by customer name: Ana before Bruno.
	name, err := f.GetCellValue(sheetSubmissions, "G2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)
	name, err = f.GetCellValue(sheetSubmissions, "G3")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", name)

	status, err := f.GetCellValue(sheetSubmissions, "A2")
	require.NoError(t, err)
	assert.Equal(t, "sucesso", status)

	pdf, err := f.GetCellValue(sheetSubmissions, "X2")
	require.NoError(t, err)
	assert.Equal(t, "Sim", pdf)

	readings, err := f.GetCellValue(sheetSubmissions, "V2")
	require.NoError(t, err)
	assert.Equal(t, "8.1, 7.9", readings)
}

func TestBuildCustomerSheetGroupsByPhone(t *testing.T) {
	f, err := Build([]*types.Submission{
		submission("Ana", "11987654321", "42"),
		submission("Ana", "11987654321", "43"),
		submission("Bruno", "11911112222", "7"),
	})
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(sheetCustomers, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	carts, err := f.GetCellValue(sheetCustomers, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Club Car 42, Club Car 43", carts)

	count, err := f.GetCellValue(sheetCustomers, "E2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	name, err = f.GetCellValue(sheetCustomers, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", name)
}

func TestExportWritesWorkbook(t *testing.T) {
	db := &mocks.MockDatabase{
		ListSubmissionsByStatusFunc: func(_ context.Context, status types.Status) ([]*types.Submission, error) {
			assert.Equal(t, types.StatusSuccess, status)
			return []*types.Submission{submission("Ana", "11987654321", "42")}, nil
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Export(context.Background(), db, path))
	assert.FileExists(t, path)
}

func TestExportListFailure(t *testing.T) {
	db := &mocks.MockDatabase{
		ListSubmissionsByStatusFunc: func(_ context.Context, _ types.Status) ([]*types.Submission, error) {
			return nil, errors.New("firestore unavailable")
		},
	}

	err := Export(context.Background(), db, filepath.Join(t.TempDir(), "out.xlsx"))
	assert.Error(t, err)
}
