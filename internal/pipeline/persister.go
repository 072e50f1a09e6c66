package pipeline

import (
	"context"
	"countryfx/internal/adapters"
	"countryfx/internal/domain"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Persister writes results to the table sink and the file sink. Both writes
// are staged first and committed only when both were staged successfully.
type Persister struct {
	table adapters.TableSink
	file  adapters.FileSink
}

func (p *Persister) Persist(ctx context.Context, results []domain.CountryRate) error {
	tableWrite, err := p.table.Stage(ctx, results)
	if err != nil {
		return fmt.Errorf("%w: table sink: %w", domain.ErrPersistence, err)
	}

	fileWrite, err := p.file.Stage(ctx, results)
	if err != nil {
		rollback(ctx, "table", tableWrite)
		return fmt.Errorf("%w: file sink: %w", domain.ErrPersistence, err)
	}

	if err = tableWrite.Commit(ctx); err != nil {
		rollback(ctx, "file", fileWrite)
		return fmt.Errorf("%w: table sink: %w", domain.ErrPersistence, err)
	}

	// The table is committed at this point; a failed rename leaves the old file in place.
	if err = fileWrite.Commit(ctx); err != nil {
		return fmt.Errorf("%w: file sink after table commit: %w", domain.ErrPersistence, err)
	}
	return nil
}

func rollback(ctx context.Context, sink string, w adapters.StagedWrite) {
	if err := w.Rollback(ctx); err != nil {
		logrus.WithError(err).WithField("sink", sink).Warn("Rollback failed")
	}
}

func NewPersister(table adapters.TableSink, file adapters.FileSink) *Persister {
	return &Persister{table: table, file: file}
}
