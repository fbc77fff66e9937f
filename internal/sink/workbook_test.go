package sink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/imamik/onboard/internal/onboarding"
	onboardtest "github.com/imamik/onboard/internal/testing"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	return rows
}

func TestWorkbookAppendsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.xlsx")
	wb, err := NewWorkbook(path)
	require.NoError(t, err)

	first := testSubmission("Acme")
	first.Form = onboardtest.NewFormBuilder().
		WithBusinessName("Acme").
		WithProduct(onboarding.ProductA, "Widget", "10", "5").
		WithImage(onboarding.ProductA, "data:image/png;base64,iVBORw0KGgo=").
		WithContact("@acme", "hi@acme.test").
		Build()
	require.NoError(t, wb.Send(context.Background(), first))

	second := testSubmission("Globex")
	second.ID = "second"
	require.NoError(t, wb.Send(context.Background(), second))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, workbookHeader, rows[0])

	assert.Equal(t, "2026-10-15T09:30:00Z", rows[1][0])
	assert.Equal(t, "Acme", rows[1][2])
	assert.Equal(t, "Widget", rows[1][5])
	assert.Equal(t, "10", rows[1][7])
	assert.Equal(t, "attached (34 bytes)", rows[1][9])
	assert.Equal(t, "Decaf", rows[1][10])
	assert.Equal(t, "", rows[1][14])
	assert.Equal(t, "@acme", rows[1][15])
	assert.Equal(t, "hi@acme.test", rows[1][16])

	assert.Equal(t, "second", rows[2][1])
	assert.Equal(t, "Globex", rows[2][2])
}

func TestWorkbookAddsSheetToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "unrelated"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := NewWorkbook(path)
	require.NoError(t, err)
	require.NoError(t, wb.Send(context.Background(), testSubmission("Acme")))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[1][2])
}

func TestNewWorkbookRequiresPath(t *testing.T) {
	_, err := NewWorkbook("")
	assert.ErrorIs(t, err, errWorkbookPath)
}
