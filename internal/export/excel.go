package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/eg467/docdirscan/internal/fetch"
)

// imageColumnLabel heads the trailing headshot column when image embedding
// is enabled.
const imageColumnLabel = "Image"

// imageRowHeight gives embedded headshots room to render.
const imageRowHeight = 80.0

// ExcelSink writes profiles to an .xlsx workbook, one row per profile under
// a bold header row. With WithHeadshots enabled, each profile's headshot is
// downloaded and embedded into a trailing image column.
type ExcelSink[T any] struct {
	path    string
	sheet   string
	columns []Column[T]

	imageURI func(T) string
	images   *fetch.Client

	file     *excelize.File
	imageDir string
	row      int
	logger   *slog.Logger
}

// ExcelOption configures an ExcelSink.
type ExcelOption[T any] func(*ExcelSink[T])

// WithHeadshots enables the image column: uri extracts the remote headshot
// URI (empty for none) and client downloads it.
func WithHeadshots[T any](uri func(T) string, client *fetch.Client) ExcelOption[T] {
	return func(s *ExcelSink[T]) {
		s.imageURI = uri
		s.images = client
	}
}

// WithExcelLogger sets the logger for non-fatal sink events.
func WithExcelLogger[T any](logger *slog.Logger) ExcelOption[T] {
	return func(s *ExcelSink[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewExcelSink creates a sink writing to the given workbook path.
func NewExcelSink[T any](path, sheet string, columns []Column[T], opts ...ExcelOption[T]) *ExcelSink[T] {
	s := &ExcelSink[T]{
		path:    path,
		sheet:   sheet,
		columns: columns,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession creates the workbook and writes the header row.
func (s *ExcelSink[T]) StartSession(ctx context.Context, label, sourceURI string) error {
	s.file = excelize.NewFile()
	if err := s.file.SetSheetName("Sheet1", s.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	s.file.SetDocProps(&excelize.DocProperties{ //nolint:errcheck // metadata only
		Title:       label,
		Description: sourceURI,
	})

	bold, err := s.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	labels := make([]string, 0, len(s.columns)+1)
	for _, col := range s.columns {
		labels = append(labels, col.Label)
	}
	if s.imageURI != nil {
		labels = append(labels, imageColumnLabel)
	}
	for i, label := range labels {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := s.file.SetCellValue(s.sheet, cell, label); err != nil {
			return fmt.Errorf("failed to write header %q: %w", label, err)
		}
		if err := s.file.SetCellStyle(s.sheet, cell, cell, bold); err != nil {
			return fmt.Errorf("failed to style header %q: %w", label, err)
		}
	}

	if s.imageURI != nil && s.images != nil {
		dir, err := os.MkdirTemp("", "docdirscan-xlsx-")
		if err != nil {
			return fmt.Errorf("failed to create image staging directory: %w", err)
		}
		s.imageDir = dir
	}

	s.row = 1
	return nil
}

// AddProfile appends one row.
func (s *ExcelSink[T]) AddProfile(ctx context.Context, profile T) error {
	if s.file == nil {
		return fmt.Errorf("AddProfile called before StartSession")
	}
	s.row++

	for i, col := range s.columns {
		cell, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			return err
		}
		if err := s.file.SetCellValue(s.sheet, cell, col.Extract(profile)); err != nil {
			return fmt.Errorf("failed to write %q for row %d: %w", col.Label, s.row, err)
		}
	}
	if s.imageURI != nil {
		s.embedImage(ctx, profile)
	}
	return nil
}

// embedImage downloads the profile headshot and places it in the trailing
// image cell. Failures are logged and the cell left empty.
func (s *ExcelSink[T]) embedImage(ctx context.Context, profile T) {
	uri := s.imageURI(profile)
	if uri == "" || s.images == nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(len(s.columns)+1, s.row)
	if err != nil {
		return
	}

	path, err := s.images.DownloadImage(ctx, uri, s.imageDir)
	if err != nil {
		s.logger.WarnContext(ctx, "headshot download failed", "uri", uri, "error", err)
		return
	}
	if err := s.file.SetRowHeight(s.sheet, s.row, imageRowHeight); err != nil {
		s.logger.WarnContext(ctx, "failed to size image row", "row", s.row, "error", err)
	}
	opts := &excelize.GraphicOptions{AutoFit: true, LockAspectRatio: true}
	if err := s.file.AddPicture(s.sheet, cell, path, opts); err != nil {
		s.logger.WarnContext(ctx, "failed to embed headshot", "uri", uri, "error", err)
	}
}

// Save writes the workbook to disk and removes the image staging directory.
func (s *ExcelSink[T]) Save() error {
	if s.file == nil {
		return fmt.Errorf("Save called before StartSession")
	}
	defer func() {
		if s.imageDir != "" {
			_ = os.RemoveAll(s.imageDir)
		}
		_ = s.file.Close()
		s.file = nil
	}()

	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}
