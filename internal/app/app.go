package app

import (
	"context"
	"time"

	"github.com/riskibarqy/nba-stats-preprocess/internal/config"
	"github.com/riskibarqy/nba-stats-preprocess/internal/infrastructure/dataset"
	"github.com/riskibarqy/nba-stats-preprocess/internal/infrastructure/jsonexport"
	"github.com/riskibarqy/nba-stats-preprocess/internal/observability"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const telemetryFlushTimeout = 5 * time.Second

func NewPreprocessService(cfg config.Config, logger *logging.Logger) *usecase.PreprocessService {
	return usecase.NewPreprocessService(
		cfg.Pipeline,
		dataset.NewUnpacker(logger),
		dataset.NewLoader(logger),
		jsonexport.NewExporter(logger),
		logger,
	)
}

// Run executes one pipeline run with tracing and profiling set up around
// it. Telemetry is flushed before Run returns, including on failure.
func Run(ctx context.Context, cfg config.Config, logger *logging.Logger, opts usecase.RunOptions) (usecase.Report, error) {
	if logger == nil {
		logger = logging.Default()
	}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return usecase.Report{}, err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return usecase.Report{}, err
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	ctx, span := otel.Tracer("nba-stats-preprocess/internal/app").Start(ctx, "preprocess.run",
		trace.WithAttributes(
			attribute.String("service.version", cfg.ServiceVersion),
			attribute.Bool("unpack", opts.Unpack),
		),
	)
	defer span.End()

	logger.InfoContext(ctx, "preprocess started",
		"unpack", opts.Unpack,
		"archive", cfg.Pipeline.ArchivePath,
		"output_dir", cfg.Pipeline.OutputDir,
	)

	report, err := NewPreprocessService(cfg, logger).Run(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}
	return report, nil
}
