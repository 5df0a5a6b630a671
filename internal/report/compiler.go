// Package report writes record batches to the single CSV report.
package report

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"markettrends/internal/model"
)

const DefaultPath = "market_trends_report.csv"

type Options struct {
	// Path is the report location. Every compile replaces the file at Path.
	Path string
	// Missing is written for keys a record does not have. Defaults to "".
	Missing string
	// Mirror, when set, receives a copy of every report after the local write.
	Mirror Mirror
	// PermFile defaults to 0o644.
	PermFile os.FileMode
}

type Result struct {
	Path    string
	Columns []string
	// Rows counts the data rows written. Records with no keys produce no row.
	Rows int
	// MirrorErr is set when the local report was written but the mirror copy failed.
	MirrorErr error
}

// Compiler serializes writers so concurrent compiles never interleave; the last one wins.
type Compiler struct {
	path    string
	missing string
	mirror  Mirror
	permF   os.FileMode

	mu sync.Mutex
}

func NewCompiler(opts Options) (*Compiler, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = DefaultPath
	}
	if base := filepath.Base(path); base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: report path %q is not a file", model.ErrPersistenceFailure, opts.Path)
	}
	perm := opts.PermFile
	if perm == 0 {
		perm = 0o644
	}
	return &Compiler{path: path, missing: opts.Missing, mirror: opts.Mirror, permF: perm}, nil
}

func (c *Compiler) Path() string {
	return c.path
}

// Name is the report file name without its directory.
func (c *Compiler) Name() string {
	return filepath.Base(c.path)
}

func (c *Compiler) CompileBatch(ctx context.Context, batch model.RecordBatch) (*Result, error) {
	return c.Compile(ctx, batch.Records())
}

// Compile writes one row per record under a header that is the union of all record
// keys in first-seen order. The previous report is replaced atomically.
func (c *Compiler) Compile(ctx context.Context, records []model.Record) (*Result, error) {
	columns := Columns(records)

	content, err := c.encode(columns, records)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", model.ErrPersistenceFailure, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeAtomic(c.path, content, c.permF); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrPersistenceFailure, err)
	}

	rows := len(records)
	if len(columns) == 0 {
		rows = 0
	}
	res := &Result{Path: c.path, Columns: columns, Rows: rows}

	if c.mirror != nil {
		if err := c.mirror.Put(ctx, c.Name(), content); err != nil {
			res.MirrorErr = fmt.Errorf("mirror: %w", err)
			slog.Error("report mirror failed, local report kept", "path", c.path, "error", err)
		}
	}

	slog.Info("report compiled", "path", c.path, "rows", rows, "columns", len(columns))

	return res, nil
}

// Columns returns the union of keys across records in the order they first appear.
func Columns(records []model.Record) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, r := range records {
		for _, f := range r {
			if _, ok := seen[f.Key]; ok {
				continue
			}
			seen[f.Key] = struct{}{}
			columns = append(columns, f.Key)
		}
	}
	return columns
}

func (c *Compiler) encode(columns []string, records []model.Record) ([]byte, error) {
	var buf bytes.Buffer
	if len(columns) == 0 {
		return buf.Bytes(), nil
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, r := range records {
		for i, col := range columns {
			value, ok := r.Get(col)
			if !ok {
				row[i] = c.missing
				continue
			}
			row[i] = formatCell(value, c.missing)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(dest string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, perm)

	bw := bufio.NewWriter(tmp)
	if _, err := bw.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
