package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_ReadsCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Player Totals.csv")
	require.NoError(t, os.WriteFile(path, []byte("player,season,pts\nA,2015,600\nB,2016,NA\n"), 0o644))

	tbl, err := NewLoader(logging.NewNop()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"player", "season", "pts"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())
	pts, ok := tbl.Value(0, "pts").Float()
	require.True(t, ok)
	assert.Equal(t, float64(600), pts)
	assert.True(t, tbl.Value(1, "pts").IsNull())
}

func TestLoader_MissingFileNamesPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Player Shooting.csv")

	_, err := NewLoader(logging.NewNop()).Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "Player Shooting.csv")
}

func TestLoader_RaggedRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("player,season\nA,2015,extra\n"), 0o644))

	_, err := NewLoader(logging.NewNop()).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.csv")
}
