package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/config"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	playerstatsmock "github.com/riskibarqy/nba-stats-preprocess/internal/mocks/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serviceLines() []seasonLine {
	return []seasonLine{
		{player: "A", season: 2015, team: "BOS", pos: "C", games: 60, points: 600, fgPercent: 0.4},
		{player: "A", season: 2016, team: "BOS", pos: "C", games: 50, points: 600, fgPercent: 0.5},
		{player: "B", season: 2015, team: "NYK", pos: "PG", games: 20, points: 200, fgPercent: 0.3},
	}
}

func TestPreprocessService_Run_ExportsAllDocuments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := config.DefaultPipeline()
	cfg.OutputDir = "out"

	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	loader.
		On("Load", mock.Anything, filepath.Join("out", cfg.Inputs.Totals)).
		Return(totalsFixture(t, serviceLines()...), nil).
		Once()
	loader.
		On("Load", mock.Anything, filepath.Join("out", cfg.Inputs.Shooting)).
		Return(shootingFixture(t, serviceLines()...), nil).
		Once()

	exported := make(map[string]*table.Table)
	orients := make(map[string]playerstats.Orientation)
	exporter.
		On("Export", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			path := args.String(1)
			exported[filepath.Base(path)] = args.Get(2).(*table.Table)
			orients[filepath.Base(path)] = args.Get(3).(playerstats.Orientation)
		}).
		Return(nil).
		Times(5)

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	report, err := service.Run(ctx, RunOptions{})
	require.NoError(t, err)

	assert.False(t, report.Unpacked)
	assert.Equal(t, 3, report.TotalsRows)
	assert.Equal(t, 3, report.ShootingRows)
	assert.Equal(t, 3, report.MergedRows)
	require.Len(t, report.Exports, 5)
	for i, name := range cfg.Outputs.Names() {
		assert.Equal(t, name, report.Exports[i].Name)
		assert.Equal(t, filepath.Join("out", name), report.Exports[i].Path)
	}

	assert.Equal(t, playerstats.OrientIndex, orients[cfg.Outputs.Alltime])
	assert.Equal(t, playerstats.OrientRecords, orients[cfg.Outputs.Players])
	assert.Equal(t, 1, exported[cfg.Outputs.Alltime].Len())

	players := exported[cfg.Outputs.Players]
	for _, column := range playerstats.IdentifierColumns {
		assert.True(t, players.Has(column), "players document lost %q", column)
	}

	career := exported[cfg.Outputs.Career]
	require.Equal(t, 2, career.Len())
	pga, ok := career.Value(0, "pga_pts").Float()
	require.True(t, ok)
	assert.InDelta(t, 10.909, pga, 0.001)
}

func TestPreprocessService_Run_UnpacksFirst(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultPipeline()
	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	unpacker.
		On("Unpack", mock.Anything, cfg.ArchivePath, cfg.OutputDir, []string{cfg.Inputs.Totals, cfg.Inputs.Shooting}).
		Return(nil).
		Once()
	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Totals)).
		Return(totalsFixture(t, serviceLines()...), nil).
		Once()
	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Shooting)).
		Return(shootingFixture(t, serviceLines()...), nil).
		Once()
	exporter.
		On("Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Times(5)

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	report, err := service.Run(context.Background(), RunOptions{Unpack: true})
	require.NoError(t, err)
	assert.True(t, report.Unpacked)
}

func TestPreprocessService_Run_UnpackFailureStopsRun(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultPipeline()
	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	unpacker.
		On("Unpack", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(crerr.Wrapf(ErrOutputDirExists, "output directory %q", cfg.OutputDir)).
		Once()

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	_, err := service.Run(context.Background(), RunOptions{Unpack: true})
	if !errors.Is(err, ErrOutputDirExists) {
		t.Fatalf("expected ErrOutputDirExists, got %v", err)
	}
	loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreprocessService_Run_LoadFailure(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultPipeline()
	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	readErr := errors.New("no such file")
	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Totals)).
		Return(nil, readErr).
		Once()

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	_, err := service.Run(context.Background(), RunOptions{})
	if !errors.Is(err, readErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestPreprocessService_Run_ExportFailureStopsRemainingExports(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultPipeline()
	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Totals)).
		Return(totalsFixture(t, serviceLines()...), nil).
		Once()
	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Shooting)).
		Return(shootingFixture(t, serviceLines()...), nil).
		Once()

	writeErr := errors.New("disk full")
	exporter.
		On("Export", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Outputs.Players), mock.Anything, playerstats.OrientRecords).
		Return(writeErr).
		Once()

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	report, err := service.Run(context.Background(), RunOptions{})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected export error, got %v", err)
	}
	assert.Empty(t, report.Exports)
}

func TestPreprocessService_Run_MissingJoinKey(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultPipeline()
	cfg.JoinKeys = []string{"player", "franchise"}
	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	loader.
		On("Load", mock.Anything, mock.Anything).
		Return(func(context.Context, string) *table.Table { return totalsFixture(t, serviceLines()...) }, nil).
		Twice()

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	_, err := service.Run(context.Background(), RunOptions{})
	if !errors.Is(err, ErrMissingJoinKey) {
		t.Fatalf("expected ErrMissingJoinKey, got %v", err)
	}
}

func TestPreprocessService_Run_CancelledContext(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultPipeline()
	unpacker := playerstatsmock.NewDatasetUnpacker(t)
	loader := playerstatsmock.NewTableLoader(t)
	exporter := playerstatsmock.NewTableExporter(t)

	ctx, cancel := context.WithCancel(context.Background())
	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Totals)).
		Return(totalsFixture(t, serviceLines()...), nil).
		Once()
	loader.
		On("Load", mock.Anything, filepath.Join(cfg.OutputDir, cfg.Inputs.Shooting)).
		Run(func(mock.Arguments) { cancel() }).
		Return(shootingFixture(t, serviceLines()...), nil).
		Once()

	service := NewPreprocessService(cfg, unpacker, loader, exporter, logging.NewNop())
	_, err := service.Run(ctx, RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
