package csvfile

import (
	"context"
	"countryfx/internal/adapters"
	"countryfx/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Writer overwrites a delimited file with one row per record, no header.
type Writer struct {
	path string
}

// Stage writes records into a temp file next to the target. The target is
// replaced only when the returned write is committed.
func (w *Writer) Stage(ctx context.Context, records []domain.CountryRate) (adapters.StagedWrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file in %q: %w", dir, err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to chmod %q: %w", tmp.Name(), err)
	}
	if err = writeRows(tmp, records); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to write %q: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to close %q: %w", tmp.Name(), err)
	}

	return &stagedFile{tmpPath: tmp.Name(), path: w.path}, nil
}

func writeRows(f *os.File, records []domain.CountryRate) error {
	cw := csv.NewWriter(f)
	for _, r := range records {
		row := []string{
			r.Name,
			strconv.Itoa(r.CallingCode),
			r.Capital,
			strconv.FormatInt(r.Population, 10),
			r.CurrencyCode,
			strconv.FormatFloat(r.ExchangeRate, 'f', -1, 64),
			r.Flag,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type stagedFile struct {
	tmpPath string
	path    string
	done    bool
}

func (s *stagedFile) Commit(_ context.Context) error {
	if s.done {
		return errors.New("staged file already finished")
	}
	s.done = true
	if err := os.Rename(s.tmpPath, s.path); err != nil {
		_ = os.Remove(s.tmpPath)
		return fmt.Errorf("failed to replace %q: %w", s.path, err)
	}
	return nil
}

func (s *stagedFile) Rollback(_ context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	if err := os.Remove(s.tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %q: %w", s.tmpPath, err)
	}
	return nil
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}
