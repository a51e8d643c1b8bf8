package dataset

import (
	"context"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
)

// Loader reads the extracted CSV files.
type Loader struct {
	logger *logging.Logger
}

func NewLoader(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{logger: logger}
}

func (l *Loader) Load(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	t, err := table.ReadCSV(f)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %q", path)
	}

	l.logger.DebugContext(ctx, "csv loaded", "path", path, "rows", t.Len(), "columns", len(t.Columns()))
	return t, nil
}
