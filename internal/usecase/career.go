package usecase

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
)

// BuildCareerAggregates produces one row per player with summed counting
// stats (total_*), unweighted means of the efficiency stats (average_*) and
// per-game rates (pga_*). A per-game rate is null when total_g is zero.
func BuildCareerAggregates(merged *table.Table) (*table.Table, error) {
	required := make([]string, 0, 1+len(playerstats.CountingStats)+len(playerstats.EfficiencyStats))
	required = append(required, playerstats.ColumnPlayer)
	required = append(required, playerstats.CountingStats...)
	required = append(required, playerstats.EfficiencyStats...)
	if err := requireColumns(merged, required...); err != nil {
		return nil, crerr.Wrap(err, "career aggregates")
	}

	aggs := make([]table.Aggregation, 0, len(playerstats.CountingStats)+len(playerstats.EfficiencyStats))
	for _, stat := range playerstats.CountingStats {
		aggs = append(aggs, table.Aggregation{Column: stat, Func: table.Sum, As: playerstats.TotalPrefix + stat})
	}
	for _, stat := range playerstats.EfficiencyStats {
		aggs = append(aggs, table.Aggregation{Column: stat, Func: table.Mean, As: playerstats.AveragePrefix + stat})
	}

	career, err := merged.GroupBy([]string{playerstats.ColumnPlayer}, aggs)
	if err != nil {
		return nil, crerr.Wrap(err, "career aggregates")
	}

	totalGames := playerstats.TotalPrefix + playerstats.ColumnGames
	for _, stat := range playerstats.PerGameStats() {
		total := playerstats.TotalPrefix + stat
		career = career.WithColumn(playerstats.PerGamePrefix+stat, func(r table.Row) table.Value {
			return perGame(r.Get(total), r.Get(totalGames))
		})
	}

	return career, nil
}

func perGame(total, games table.Value) table.Value {
	t, ok := total.Float()
	if !ok {
		return table.Null()
	}
	g, ok := games.Float()
	if !ok || g == 0 {
		return table.Null()
	}
	return table.Number(t / g)
}
