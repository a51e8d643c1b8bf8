package usecase

import (
	"testing"

	"github.com/riskibarqy/nba-stats-preprocess/internal/config"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
)

type seasonLine struct {
	player    string
	season    int
	team      string
	pos       string
	games     float64
	points    float64
	fgPercent float64
}

func totalsFixture(t *testing.T, lines ...seasonLine) *table.Table {
	t.Helper()

	columns := []string{
		playerstats.ColumnSeasonID,
		playerstats.ColumnSeason,
		playerstats.ColumnPlayerID,
		playerstats.ColumnPlayer,
		playerstats.ColumnPosition,
		playerstats.ColumnTeam,
		playerstats.ColumnLeague,
		playerstats.ColumnExperience,
		playerstats.ColumnBirthYear,
	}
	columns = append(columns, playerstats.CountingStats...)

	rows := make([][]table.Value, 0, len(lines))
	for _, line := range lines {
		row := []table.Value{
			table.Number(float64(line.season*10 + len(line.player))),
			table.Number(float64(line.season)),
			table.String("id-" + line.player),
			table.String(line.player),
			table.String(line.pos),
			table.String(line.team),
			table.String("NBA"),
			table.Number(3),
			table.Number(1990),
		}
		for _, stat := range playerstats.CountingStats {
			switch stat {
			case playerstats.ColumnGames:
				row = append(row, table.Number(line.games))
			case "pts":
				row = append(row, table.Number(line.points))
			default:
				row = append(row, table.Number(line.games))
			}
		}
		rows = append(rows, row)
	}

	tbl, err := table.New(columns, rows)
	if err != nil {
		t.Fatalf("build totals fixture: %v", err)
	}
	return tbl
}

func shootingFixture(t *testing.T, lines ...seasonLine) *table.Table {
	t.Helper()

	columns := []string{
		playerstats.ColumnSeasonID,
		playerstats.ColumnSeason,
		playerstats.ColumnPlayerID,
		playerstats.ColumnPlayer,
		playerstats.ColumnPosition,
		playerstats.ColumnTeam,
		playerstats.ColumnLeague,
		playerstats.ColumnGames,
	}
	columns = append(columns, playerstats.EfficiencyStats...)

	rows := make([][]table.Value, 0, len(lines))
	for _, line := range lines {
		row := []table.Value{
			table.Number(float64(line.season*10 + len(line.player))),
			table.Number(float64(line.season)),
			table.String("id-" + line.player),
			table.String(line.player),
			table.String(line.pos),
			table.String(line.team),
			table.String("NBA"),
			table.Number(line.games),
		}
		for range playerstats.EfficiencyStats {
			row = append(row, table.Number(line.fgPercent))
		}
		rows = append(rows, row)
	}

	tbl, err := table.New(columns, rows)
	if err != nil {
		t.Fatalf("build shooting fixture: %v", err)
	}
	return tbl
}

// mergedFixture normalizes and merges the same lines the way Run does.
func mergedFixture(t *testing.T, lines ...seasonLine) *table.Table {
	t.Helper()

	cfg := config.DefaultPipeline()
	normalizer := NewNormalizer(NormalizeSteps(cfg), logging.NewNop())

	totals, err := normalizer.Normalize(t.Context(), "totals", totalsFixture(t, lines...))
	if err != nil {
		t.Fatalf("normalize totals: %v", err)
	}
	shooting, err := normalizer.Normalize(t.Context(), "shooting", shootingFixture(t, lines...))
	if err != nil {
		t.Fatalf("normalize shooting: %v", err)
	}

	merged, err := MergePlayerSeasons(totals, shooting, cfg.JoinKeys)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	return merged
}

func columnFloats(t *testing.T, tbl *table.Table, column string) []float64 {
	t.Helper()

	out := make([]float64, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		v, ok := tbl.Value(i, column).Float()
		if !ok {
			t.Fatalf("row %d column %q is not a number: %v", i, column, tbl.Value(i, column))
		}
		out = append(out, v)
	}
	return out
}
