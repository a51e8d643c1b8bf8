package usecase

import (
	"context"
	"path/filepath"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/config"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type RunOptions struct {
	// Unpack extracts the dataset archive into the output directory first.
	Unpack bool
}

type ExportReport struct {
	Name   string                  `json:"name"`
	Path   string                  `json:"path"`
	Orient playerstats.Orientation `json:"orient"`
	Rows   int                     `json:"rows"`
}

type Report struct {
	Unpacked     bool           `json:"unpacked"`
	TotalsRows   int            `json:"totals_rows"`
	ShootingRows int            `json:"shooting_rows"`
	MergedRows   int            `json:"merged_rows"`
	Exports      []ExportReport `json:"exports"`
	Duration     time.Duration  `json:"duration"`
}

type PreprocessService struct {
	cfg        config.Pipeline
	unpacker   playerstats.DatasetUnpacker
	loader     playerstats.TableLoader
	exporter   playerstats.TableExporter
	normalizer *Normalizer
	logger     *logging.Logger
	now        func() time.Time
}

func NewPreprocessService(
	cfg config.Pipeline,
	unpacker playerstats.DatasetUnpacker,
	loader playerstats.TableLoader,
	exporter playerstats.TableExporter,
	logger *logging.Logger,
) *PreprocessService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PreprocessService{
		cfg:        cfg,
		unpacker:   unpacker,
		loader:     loader,
		exporter:   exporter,
		normalizer: NewNormalizer(NormalizeSteps(cfg), logger),
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes the whole pipeline once. Stages run strictly in order and
// the first failure aborts the run; files written before it are left behind.
func (s *PreprocessService) Run(ctx context.Context, opts RunOptions) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.Run",
		attribute.Bool("unpack", opts.Unpack),
		attribute.String("output_dir", s.cfg.OutputDir),
	)
	defer span.End()

	startedAt := s.now()
	report, err := s.run(ctx, opts)
	report.Duration = s.now().Sub(startedAt)
	if err != nil {
		span.RecordError(err)
		return report, err
	}

	s.logger.InfoContext(ctx, "preprocess finished",
		"merged_rows", report.MergedRows,
		"exports", len(report.Exports),
		"duration", report.Duration,
	)
	return report, nil
}

func (s *PreprocessService) run(ctx context.Context, opts RunOptions) (Report, error) {
	var report Report

	if opts.Unpack {
		if err := s.unpack(ctx); err != nil {
			return report, err
		}
		report.Unpacked = true
	}

	totals, err := s.loadSource(ctx, "totals", s.cfg.Inputs.Totals)
	if err != nil {
		return report, err
	}
	report.TotalsRows = totals.Len()

	shooting, err := s.loadSource(ctx, "shooting", s.cfg.Inputs.Shooting)
	if err != nil {
		return report, err
	}
	report.ShootingRows = shooting.Len()

	if err := ctx.Err(); err != nil {
		return report, err
	}
	merged, err := s.merge(ctx, totals, shooting)
	if err != nil {
		return report, err
	}
	report.MergedRows = merged.Len()

	if err := ctx.Err(); err != nil {
		return report, err
	}
	career, err := s.career(ctx, merged)
	if err != nil {
		return report, err
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	averages, err := s.leagueAverages(ctx, merged)
	if err != nil {
		return report, err
	}

	outputs := s.cfg.Outputs
	documents := []struct {
		name   string
		table  *table.Table
		orient playerstats.Orientation
	}{
		{name: outputs.Players, table: merged, orient: playerstats.OrientRecords},
		{name: outputs.Career, table: career, orient: playerstats.OrientRecords},
		{name: outputs.Seasonal, table: averages.Seasonal, orient: playerstats.OrientRecords},
		{name: outputs.Alltime, table: averages.Alltime, orient: playerstats.OrientIndex},
		{name: outputs.Positional, table: averages.Positional, orient: playerstats.OrientRecords},
	}
	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		exported, err := s.export(ctx, doc.name, doc.table, doc.orient)
		if err != nil {
			return report, err
		}
		report.Exports = append(report.Exports, exported)
	}

	return report, nil
}

func (s *PreprocessService) unpack(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.unpack",
		attribute.String("archive", s.cfg.ArchivePath),
	)
	defer span.End()

	keep := []string{s.cfg.Inputs.Totals, s.cfg.Inputs.Shooting}
	s.logger.InfoContext(ctx, "unpacking dataset", "archive", s.cfg.ArchivePath, "output_dir", s.cfg.OutputDir)
	if err := s.unpacker.Unpack(ctx, s.cfg.ArchivePath, s.cfg.OutputDir, keep); err != nil {
		span.RecordError(err)
		return crerr.Wrap(err, "unpack dataset")
	}
	return nil
}

func (s *PreprocessService) loadSource(ctx context.Context, source, file string) (*table.Table, error) {
	path := filepath.Join(s.cfg.OutputDir, file)
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.load",
		attribute.String("source", source),
		attribute.String("path", path),
	)
	defer span.End()

	raw, err := s.loader.Load(ctx, path)
	if err != nil {
		span.RecordError(err)
		return nil, crerr.Wrapf(err, "load %s", source)
	}
	s.logger.InfoContext(ctx, "source loaded", "source", source, "path", path, "rows", raw.Len(), "columns", len(raw.Columns()))

	normalized, err := s.normalizer.Normalize(ctx, source, raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "source normalized", "source", source, "rows", normalized.Len())

	return normalized, nil
}

func (s *PreprocessService) merge(ctx context.Context, totals, shooting *table.Table) (*table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.merge")
	defer span.End()

	merged, err := MergePlayerSeasons(totals, shooting, s.cfg.JoinKeys)
	if err != nil {
		span.RecordError(err)
		return nil, crerr.Wrap(err, "merge player seasons")
	}
	setRows(span, merged)
	s.logger.InfoContext(ctx, "player seasons merged", "rows", merged.Len(), "join_keys", s.cfg.JoinKeys)
	return merged, nil
}

func (s *PreprocessService) career(ctx context.Context, merged *table.Table) (*table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.career")
	defer span.End()

	career, err := BuildCareerAggregates(merged)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	setRows(span, career)
	s.logger.InfoContext(ctx, "career aggregates built", "players", career.Len())
	return career, nil
}

func (s *PreprocessService) leagueAverages(ctx context.Context, merged *table.Table) (LeagueAverages, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.leagueAverages")
	defer span.End()

	averages, err := BuildLeagueAverages(merged)
	if err != nil {
		span.RecordError(err)
		return LeagueAverages{}, err
	}
	s.logger.InfoContext(ctx, "league averages built",
		"seasons", averages.Seasonal.Len(),
		"positions", averages.Positional.Len(),
	)
	return averages, nil
}

func (s *PreprocessService) export(ctx context.Context, name string, t *table.Table, orient playerstats.Orientation) (ExportReport, error) {
	path := filepath.Join(s.cfg.OutputDir, name)
	ctx, span := startUsecaseSpan(ctx, "usecase.PreprocessService.export",
		attribute.String("path", path),
		attribute.String("orient", string(orient)),
	)
	defer span.End()
	setRows(span, t)

	if err := s.exporter.Export(ctx, path, t, orient); err != nil {
		span.RecordError(err)
		return ExportReport{}, crerr.Wrapf(err, "export %s", name)
	}
	s.logger.InfoContext(ctx, "document exported", "path", path, "orient", string(orient), "rows", t.Len())

	return ExportReport{Name: name, Path: path, Orient: orient, Rows: t.Len()}, nil
}

func setRows(span trace.Span, t *table.Table) {
	span.SetAttributes(attribute.Int("rows", t.Len()))
}
