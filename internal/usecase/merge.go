package usecase

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
)

// MergePlayerSeasons outer-joins the normalized totals and shooting tables.
// Every key must exist in both tables; player-seasons missing from one
// source are kept with nulls for that source's columns.
func MergePlayerSeasons(totals, shooting *table.Table, keys []string) (*table.Table, error) {
	if len(keys) == 0 {
		return nil, crerr.Wrap(ErrInvalidInput, "merge needs at least one join key")
	}
	for _, key := range keys {
		if !totals.Has(key) {
			return nil, crerr.Wrapf(ErrMissingJoinKey, "totals table has no column %q", key)
		}
		if !shooting.Has(key) {
			return nil, crerr.Wrapf(ErrMissingJoinKey, "shooting table has no column %q", key)
		}
	}

	merged, err := table.OuterJoin(totals, shooting, keys)
	if err != nil {
		return nil, crerr.Wrap(err, "outer join")
	}
	return merged, nil
}
