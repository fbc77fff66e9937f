package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/imamik/onboard/internal/onboarding"
)

// DefaultSheet is the worksheet submissions are appended to.
const DefaultSheet = "Submissions"

var workbookHeader = []string{
	"Submitted At", "Submission ID",
	"Business Name", "Business Description", "Location",
	"Product A Name", "Product A Description", "Product A Price", "Product A Stock", "Product A Image",
	"Product B Name", "Product B Description", "Product B Price", "Product B Stock", "Product B Image",
	"Telegram", "Email", "Finance Details",
}

// Workbook appends one row per submission to a local xlsx file, mirroring
// the remote sheet. Image payloads are summarized, not embedded.
type Workbook struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// NewWorkbook creates a workbook sink writing to path.
func NewWorkbook(path string) (*Workbook, error) {
	if path == "" {
		return nil, errWorkbookPath
	}
	return &Workbook{path: path, sheet: DefaultSheet}, nil
}

// Name implements Sink.
func (w *Workbook) Name() string { return "xlsx" }

// Send implements Sink.
func (w *Workbook) Send(_ context.Context, sub *Submission) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", w.sheet, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("failed to address row: %w", err)
	}
	row := submissionRow(sub)
	if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

// open loads the workbook, creating it with a header row when missing.
func (w *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err == nil {
		idx, err := f.GetSheetIndex(w.sheet)
		if err != nil || idx < 0 {
			if _, err := f.NewSheet(w.sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to add sheet %s: %w", w.sheet, err)
			}
			if err := w.writeHeader(f); err != nil {
				f.Close()
				return nil, err
			}
		}
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}

	f = excelize.NewFile()
	idx, err := f.NewSheet(w.sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add sheet %s: %w", w.sheet, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := w.writeHeader(f); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (w *Workbook) writeHeader(f *excelize.File) error {
	header := make([]any, len(workbookHeader))
	for i, h := range workbookHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

func submissionRow(sub *Submission) []any {
	form := sub.Form
	row := []any{sub.At.Format(time.RFC3339), sub.ID, form.BusinessName, form.BusinessDescription, form.Location}
	row = append(row, productCells(form.ProductA)...)
	row = append(row, productCells(form.ProductB)...)
	return append(row, form.Telegram, form.Email, form.FinanceDetails)
}

func productCells(p onboarding.ProductState) []any {
	image := ""
	if p.Image != nil {
		image = fmt.Sprintf("attached (%d bytes)", len(*p.Image))
	}
	return []any{p.Name, p.Description, p.Price, p.Stock, image}
}
