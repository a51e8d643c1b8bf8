package usecase

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
)

type LeagueAverages struct {
	// Seasonal has one row per season.
	Seasonal *table.Table
	// Alltime is a single row of means over every player-season.
	Alltime *table.Table
	// Positional has one row per (season, position).
	Positional *table.Table
}

// BuildLeagueAverages averages every numeric stat after the identifier
// columns are removed. Position is grouped on for the positional view and
// dropped for the others; season is dropped only for the all-time view.
func BuildLeagueAverages(merged *table.Table) (LeagueAverages, error) {
	stats := merged.Drop(playerstats.IdentifierColumns...)
	if err := requireColumns(stats, playerstats.ColumnSeason, playerstats.ColumnPosition); err != nil {
		return LeagueAverages{}, crerr.Wrap(err, "league averages")
	}

	positional, err := stats.MeanOfNumeric(playerstats.ColumnSeason, playerstats.ColumnPosition)
	if err != nil {
		return LeagueAverages{}, crerr.Wrap(err, "positional averages")
	}

	withoutPosition := stats.Drop(playerstats.ColumnPosition)
	seasonal, err := withoutPosition.MeanOfNumeric(playerstats.ColumnSeason)
	if err != nil {
		return LeagueAverages{}, crerr.Wrap(err, "seasonal averages")
	}

	alltime, err := withoutPosition.Drop(playerstats.ColumnSeason).MeanOfNumeric()
	if err != nil {
		return LeagueAverages{}, crerr.Wrap(err, "all-time averages")
	}

	return LeagueAverages{
		Seasonal:   seasonal,
		Alltime:    alltime,
		Positional: positional,
	}, nil
}
