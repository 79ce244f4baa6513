package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
)

// trackerSheet is the lookup sheet the firm's trial tracker workbook
// keeps its per-case schedule rows on.
const trackerSheet = "Lookup Table 2"

var trackerHeaders = []string{
	"Case No.",
	"Case Style",
	"Client",
	"Matter",
	"Document Type",
	"Calendar Call",
	"Trial Date",
	"Trial End",
	"Filed Path",
}

// Tracker upserts filed-document rows into the tracking workbook.
// Rows are keyed by case number; recording the same item twice is a
// no-op.
type Tracker struct {
	path   string
	logger *zap.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewTracker creates a tracker writing to the workbook at path. The
// workbook is created on first record if it does not exist.
func NewTracker(path string, logger *zap.Logger) *Tracker {
	return &Tracker{
		path:   path,
		logger: logger,
		seen:   make(map[string]bool),
	}
}

// Record upserts the row for the record's case number. The row is
// created with the case identity columns when missing, then the
// schedule columns are written from the extraction dates.
func (t *Tracker) Record(ctx context.Context, rec *core.TrackingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := rec.ItemID + "|" + rec.CaseNumber
	if t.seen[key] {
		t.logger.Debug("tracking record already written",
			zap.String("item_id", rec.ItemID), zap.String("case_number", rec.CaseNumber))
		return nil
	}

	f, created, err := t.open()
	if err != nil {
		return err
	}
	defer f.Close()

	cols, err := headerColumns(f)
	if err != nil {
		return err
	}

	row, err := t.findRow(f, cols, rec.CaseNumber)
	if err != nil {
		return err
	}
	if row == 0 {
		row, err = t.appendRow(f, cols, rec)
		if err != nil {
			return err
		}
	}

	values := map[string]string{
		"Document Type": string(rec.DocumentType),
		"Filed Path":    rec.FiledPath,
		"Calendar Call": dateCell(rec.CalendarCallDate),
		"Trial Date":    dateCell(rec.TrialStartDate),
		"Trial End":     dateCell(rec.TrialEndDate),
	}
	for header, value := range values {
		if value == "" {
			continue
		}
		col, ok := cols[header]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(trackerSheet, cell, value); err != nil {
			return fmt.Errorf("set %s for case %s: %w", header, rec.CaseNumber, err)
		}
	}

	if created {
		err = f.SaveAs(t.path)
	} else {
		err = f.Save()
	}
	if err != nil {
		return fmt.Errorf("save tracker workbook %s: %w", t.path, err)
	}

	t.seen[key] = true
	t.logger.Info("tracking record written",
		zap.String("case_number", rec.CaseNumber),
		zap.String("document_type", string(rec.DocumentType)),
		zap.Int("row", row))
	return nil
}

// open loads the workbook, creating a fresh one with the lookup sheet
// and header row when the file does not exist yet.
func (t *Tracker) open() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(t.path)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("open tracker workbook %s: %w", t.path, err)
	}

	f = excelize.NewFile()
	if _, err := f.NewSheet(trackerSheet); err != nil {
		return nil, false, err
	}
	for i, h := range trackerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(trackerSheet, cell, h); err != nil {
			return nil, false, err
		}
	}
	t.logger.Info("creating tracker workbook", zap.String("path", t.path))
	return f, true, nil
}

// headerColumns maps header names to 1-based column indexes from the
// sheet's first row.
func headerColumns(f *excelize.File) (map[string]int, error) {
	rows, err := f.GetRows(trackerSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", trackerSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", trackerSheet)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i + 1
	}
	if _, ok := cols["Case No."]; !ok {
		return nil, fmt.Errorf("sheet %q missing %q column", trackerSheet, "Case No.")
	}
	return cols, nil
}

// findRow returns the 1-based row holding the case number, or 0.
func (t *Tracker) findRow(f *excelize.File, cols map[string]int, caseNumber string) (int, error) {
	if caseNumber == "" {
		return 0, nil
	}

	rows, err := f.GetRows(trackerSheet)
	if err != nil {
		return 0, err
	}

	keyCol := cols["Case No."] - 1
	for i, row := range rows {
		if i == 0 || keyCol >= len(row) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[keyCol]), caseNumber) {
			return i + 1, nil
		}
	}
	return 0, nil
}

// appendRow adds a minimal identity row for a case the tracker has not
// seen before and returns its row index.
func (t *Tracker) appendRow(f *excelize.File, cols map[string]int, rec *core.TrackingRecord) (int, error) {
	rows, err := f.GetRows(trackerSheet)
	if err != nil {
		return 0, err
	}
	row := len(rows) + 1

	identity := map[string]string{
		"Case No.":   rec.CaseNumber,
		"Case Style": rec.Style,
		"Client":     rec.Client,
		"Matter":     rec.Matter,
	}
	for header, value := range identity {
		col, ok := cols[header]
		if !ok || value == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(trackerSheet, cell, value); err != nil {
			return 0, err
		}
	}

	t.logger.Info("created tracker row",
		zap.String("case_number", rec.CaseNumber), zap.Int("row", row))
	return row, nil
}

func dateCell(d *core.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
