package playerstats

import (
	"context"

	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
)

type DatasetUnpacker interface {
	// Unpack extracts archivePath into outputDir, keeping only the entries named in keep.
	Unpack(ctx context.Context, archivePath, outputDir string, keep []string) error
}

type TableLoader interface {
	Load(ctx context.Context, path string) (*table.Table, error)
}

type TableExporter interface {
	Export(ctx context.Context, path string, t *table.Table, orient Orientation) error
}
