// Package docsource turns an uploaded file into the page text and table
// grids the extractors consume. PDFs go through pdftotext in layout mode;
// spreadsheets are read directly with excelize.
package docsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/courtdata/stats-tracker/internal/extract"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

// Document is the extractor-facing view of one uploaded file.
type Document struct {
	Filename string
	Text     string
	Pages    int
	Tables   []extract.Table
}

type Reader struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewReader(cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Reader{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Read picks a strategy based on the file extension.
func (r *Reader) Read(ctx context.Context, filename string, src io.Reader) (Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return r.readPDF(ctx, filename, src)
	case ".xlsx", ".xlsm":
		return r.readWorkbook(filename, src)
	default:
		r.logger.Error("docsource.unsupported", "filename", filename, "ext", ext)
		return Document{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

func (r *Reader) readPDF(ctx context.Context, filename string, src io.Reader) (Document, error) {
	// pdftotext -layout -enc UTF-8 -eol unix - -
	out, errb, err := r.runner.Run(ctx, src, r.cfg.Pdftotext,
		"-layout", "-enc", "UTF-8", "-eol", "unix", "-", "-")
	if err != nil {
		return Document{}, fmt.Errorf("pdftotext: %w (%s)", err, truncate(string(errb), 512))
	}
	text := string(out)
	doc := Document{
		Filename: filename,
		Text:     text,
		// a form-feed \f is the page separator
		Pages:  1 + strings.Count(text, "\f"),
		Tables: gridTables(text),
	}
	r.logger.Debug("docsource.pdf", "filename", filename, "pages", doc.Pages, "tables", len(doc.Tables))
	return doc, nil
}

func (r *Reader) readWorkbook(filename string, src io.Reader) (Document, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		return Document{}, fmt.Errorf("read workbook: %w", err)
	}
	tables, err := extract.WorkbookTables(&buf)
	if err != nil {
		return Document{}, fmt.Errorf("open workbook: %w", err)
	}
	r.logger.Debug("docsource.workbook", "filename", filename, "tables", len(tables))
	return Document{Filename: filename, Pages: 1, Tables: tables}, nil
}

// gridTables approximates pdftotext layout output as table grids: blocks of
// consecutive non-blank lines become one table, cells split on runs of two
// or more spaces. Single-column blocks are dropped since the page text
// already carries them.
func gridTables(text string) []extract.Table {
	var tables []extract.Table
	var current extract.Table

	flush := func() {
		if len(current) > 0 && maxWidth(current) > 1 {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\f", "")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, splitCells(line))
	}
	flush()
	return tables
}

func splitCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "  ") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func maxWidth(t extract.Table) int {
	w := 0
	for _, row := range t {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
