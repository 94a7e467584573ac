package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantmind-br/locrank/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleAnalysis(id string, created time.Time) *Analysis {
	return &Analysis{
		AnalysisID:           id,
		Source:               "login.html",
		ContentHash:          "abc123",
		CacheKey:             "key-" + id,
		Framework:            core.FrameworkPlaywright,
		IncludeAccessibility: true,
		ElementCount:         1,
		CreatedAt:            created,
		Results: []core.LocatorResult{{
			Element: core.ElementDescriptor{Tag: "button", Text: "Login", Attributes: map[string]string{"id": "submit-btn"}},
			Strategies: []core.ScoredStrategy{{
				LocatorCandidate: core.LocatorCandidate{
					Type:              core.StrategyID,
					RawValue:          core.StringValue("submit-btn"),
					FormattedSelector: "#submit-btn",
				},
				Scores:     core.Scores{Uniqueness: 1, Stability: 0.9, Readability: 1, Performance: 1, Accessibility: 0.6},
				TotalScore: 0.92,
				Rank:       1,
			}},
			Context: core.ElementContext{Form: &core.FormRef{ID: "login"}},
		}},
	}
}

func TestDBOperations(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(ctx, sampleAnalysis("3f1c-aaaa", created)))

	got, err := db.Get(ctx, "3f1c-aaaa")
	require.NoError(t, err)
	assert.Equal(t, "login.html", got.Source)
	assert.Equal(t, core.FrameworkPlaywright, got.Framework)
	assert.True(t, got.IncludeAccessibility)
	assert.True(t, created.Equal(got.CreatedAt))
	require.Len(t, got.Results, 1)
	assert.Equal(t, sampleAnalysis("3f1c-aaaa", created).Results, got.Results)

	list, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Results)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, db.Delete(ctx, "3f1c-aaaa"))

	_, err = db.Get(ctx, "3f1c-aaaa")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.Delete(ctx, "3f1c-aaaa"), ErrNotFound)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	now := time.Now()

	require.NoError(t, db.Create(ctx, sampleAnalysis("ab12-0001", now)))
	require.NoError(t, db.Create(ctx, sampleAnalysis("ab12-0002", now)))
	require.NoError(t, db.Create(ctx, sampleAnalysis("cd34-0001", now)))

	got, err := db.Resolve(ctx, "cd")
	require.NoError(t, err)
	assert.Equal(t, "cd34-0001", got.AnalysisID)

	got, err = db.Resolve(ctx, "ab12-0002")
	require.NoError(t, err)
	assert.Equal(t, "ab12-0002", got.AnalysisID)

	_, err = db.Resolve(ctx, "ab12")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = db.Resolve(ctx, "zz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.Resolve(ctx, "%")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByCacheKey_ReturnsNewest(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	older := sampleAnalysis("old", time.Now().Add(-2*time.Hour))
	newer := sampleAnalysis("new", time.Now())
	older.CacheKey = "shared"
	newer.CacheKey = "shared"

	require.NoError(t, db.Create(ctx, older))
	require.NoError(t, db.Create(ctx, newer))

	got, err := db.FindByCacheKey(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "new", got.AnalysisID)

	_, err = db.FindByCacheKey(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPruneAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	now := time.Now()

	require.NoError(t, db.Create(ctx, sampleAnalysis("a", now.Add(-48*time.Hour))))
	require.NoError(t, db.Create(ctx, sampleAnalysis("b", now.Add(-time.Minute))))
	require.NoError(t, db.Create(ctx, sampleAnalysis("c", now)))

	pruned, err := db.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	removed, err := db.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test_migrations.db")

	db, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Ping(ctx))
	assert.Equal(t, path, db.Path())
	require.NoError(t, db.Close())

	// reopening must not re-record migrations
	db, err = New(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.read.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}
