package playerstats

// Source columns shared by the totals and shooting tables.
const (
	ColumnSeasonID   = "seas_id"
	ColumnSeason     = "season"
	ColumnPlayerID   = "player_id"
	ColumnPlayer     = "player"
	ColumnTeam       = "tm"
	ColumnPosition   = "pos"
	ColumnLeague     = "lg"
	ColumnExperience = "experience"
	ColumnBirthYear  = "birth_year"
	ColumnGames      = "g"
)

// Prefixes of the career aggregate columns.
const (
	TotalPrefix   = "total_"
	AveragePrefix = "average_"
	PerGamePrefix = "pga_"
)

// CountingStats are summed over a career. Games played comes first; it is
// the divisor of every per-game rate.
var CountingStats = []string{
	ColumnGames, // games played
	"mp",        // minutes played
	"ft",        // free throws made
	"orb",       // offensive rebounds
	"drb",       // defensive rebounds
	"trb",       // total rebounds
	"ast",
	"stl",
	"blk",
	"tov",
	"pf", // personal fouls
	"pts",
}

// EfficiencyStats are averaged over a career as an unweighted mean of the
// per-season values, not recomputed from makes and attempts.
var EfficiencyStats = []string{
	"fg_percent",
	"x3p_percent",
	"x2p_percent",
	"e_fg_percent",
	"ft_percent",
	"avg_dist_fga",                 // average distance of a field goal attempt
	"fg_percent_from_x2p_range",    // any 2p attempt
	"fg_percent_from_x0_3_range",   // at the rim
	"fg_percent_from_x3_10_range",  // short 2p
	"fg_percent_from_x10_16_range", // mid range
	"fg_percent_from_x16_3p_range", // long 2p
	"fg_percent_from_x3p_range",
}

// PerGameStats are the counting stats divided by games played.
func PerGameStats() []string {
	out := make([]string, 0, len(CountingStats)-1)
	for _, stat := range CountingStats {
		if stat == ColumnGames {
			continue
		}
		out = append(out, stat)
	}
	return out
}

// IdentifierColumns carry no meaning as an average and are removed before
// league averages are computed.
var IdentifierColumns = []string{
	ColumnPlayerID,
	ColumnSeasonID,
	ColumnPlayer,
	ColumnTeam,
}

// Orientation selects the JSON layout of an exported table.
type Orientation string

const (
	// OrientRecords writes an array with one object per row.
	OrientRecords Orientation = "records"
	// OrientIndex writes a single row as a column -> value object.
	OrientIndex Orientation = "index"
)
