package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wikiguess/internal/storage"
)

func TestArticleIndex(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	i := ArticleIndex(day, "salt", 7)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 7)
	assert.Equal(t, i, ArticleIndex(day.Add(-time.Hour), "salt", 7), "same UTC day, same article")
	assert.Equal(t, 0, ArticleIndex(day, "salt", 0))

	seen := map[int]bool{}
	for d := 0; d < 60; d++ {
		seen[ArticleIndex(day.AddDate(0, 0, d), "salt", 7)] = true
	}
	assert.Greater(t, len(seen), 1, "index varies across days")
}

func TestDateKey(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("east", 10*3600)
	assert.Equal(t, "2026-03-13", DateKey(time.Date(2026, 3, 14, 5, 0, 0, 0, loc)))
}

func TestStore(t *testing.T) {
	t.Parallel()

	db, err := storage.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(db))

	ctx := context.Background()
	s := NewStore(db)

	played, err := s.AlreadyPlayed(ctx, "a", "2026-03-14")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "a", Date: "2026-03-14", Guesses: 9, ElapsedMs: 5000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "a", Date: "2026-03-14", Guesses: 1, ElapsedMs: 1}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "b", Date: "2026-03-14", Guesses: 4, ElapsedMs: 5000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "c", Date: "2026-03-14", Guesses: 20, ElapsedMs: 900}))

	played, err = s.AlreadyPlayed(ctx, "a", "2026-03-14")
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := s.Leaderboard(ctx, "2026-03-14", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{UserID: "c", Guesses: 20, ElapsedMs: 900},
		{UserID: "b", Guesses: 4, ElapsedMs: 5000},
		{UserID: "a", Guesses: 9, ElapsedMs: 5000},
	}, rows)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "d", Date: "2026-03-14", Guesses: 1, ElapsedMs: 10, Revealed: true}))
	played, err = s.AlreadyPlayed(ctx, "d", "2026-03-14")
	require.NoError(t, err)
	assert.True(t, played, "a reveal locks the day")
	rows, err = s.Leaderboard(ctx, "2026-03-14", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "revealed results stay off the leaderboard")

	empty, err := s.Leaderboard(ctx, "1999-01-01", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
