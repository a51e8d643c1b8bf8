package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/config"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
	"go.opentelemetry.io/otel/attribute"
)

// TableTransform returns a new table and never modifies its input.
type TableTransform func(*table.Table) (*table.Table, error)

type NormalizeStep struct {
	Name      string
	Transform TableTransform
}

// NormalizeSteps lists the row and column clean-up applied to both source
// tables before they are merged. Order matters: the season filters run on
// the sorted, re-indexed table.
func NormalizeSteps(p config.Pipeline) []NormalizeStep {
	return []NormalizeStep{
		{Name: "sort_by_player", Transform: SortByPlayer},
		{Name: "reset_index", Transform: ResetIndex},
		{Name: "drop_seasons_before_min", Transform: DropSeasonsBefore(p.Seasons.Min)},
		{Name: "drop_seasons_after_max", Transform: DropSeasonsAfter(p.Seasons.Max)},
		{Name: "drop_unused_columns", Transform: DropColumns(p.DroppedColumns...)},
	}
}

// SortByPlayer stable-sorts rows by player name.
func SortByPlayer(t *table.Table) (*table.Table, error) {
	if err := requireColumns(t, playerstats.ColumnPlayer); err != nil {
		return nil, err
	}
	return t.SortStable(playerstats.ColumnPlayer)
}

func ResetIndex(t *table.Table) (*table.Table, error) {
	return t.ResetIndex(), nil
}

// DropSeasonsBefore removes rows whose season is earlier than first or
// unknown. Shooting percentages are not published before 2013.
func DropSeasonsBefore(first int) TableTransform {
	return func(t *table.Table) (*table.Table, error) {
		if err := requireColumns(t, playerstats.ColumnSeason); err != nil {
			return nil, err
		}
		return t.Filter(func(r table.Row) bool {
			season, ok := r.Get(playerstats.ColumnSeason).Float()
			return ok && season >= float64(first)
		}), nil
	}
}

// DropSeasonsAfter removes rows whose season is later than last.
func DropSeasonsAfter(last int) TableTransform {
	return func(t *table.Table) (*table.Table, error) {
		if err := requireColumns(t, playerstats.ColumnSeason); err != nil {
			return nil, err
		}
		return t.Filter(func(r table.Row) bool {
			season, ok := r.Get(playerstats.ColumnSeason).Float()
			return ok && season <= float64(last)
		}), nil
	}
}

// DropColumns removes columns not needed downstream. Absent names are ignored.
func DropColumns(columns ...string) TableTransform {
	return func(t *table.Table) (*table.Table, error) {
		return t.Drop(columns...), nil
	}
}

type Normalizer struct {
	steps  []NormalizeStep
	logger *logging.Logger
}

func NewNormalizer(steps []NormalizeStep, logger *logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Normalizer{steps: steps, logger: logger}
}

// Normalize runs every step in order; source names the table in logs and errors.
func (n *Normalizer) Normalize(ctx context.Context, source string, t *table.Table) (*table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Normalizer.Normalize", attribute.String("source", source))
	defer span.End()

	current := t
	for _, step := range n.steps {
		before := current.Len()
		next, err := step.Transform(current)
		if err != nil {
			span.RecordError(err)
			return nil, crerr.Wrapf(err, "normalize %s: step %s", source, step.Name)
		}
		current = next

		n.logger.DebugContext(ctx, "normalize step applied",
			"source", source,
			"step", step.Name,
			"rows_before", before,
			"rows_after", current.Len(),
		)
	}

	return current, nil
}

func requireColumns(t *table.Table, columns ...string) error {
	for _, column := range columns {
		if !t.Has(column) {
			return crerr.Wrapf(ErrMissingColumn, "column %q", column)
		}
	}
	return nil
}
