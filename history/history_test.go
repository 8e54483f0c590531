package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	e := scoring.NewEngine(scoring.DefaultModel())
	res := e.Predict(scoring.EmotionDistribution{
		"happy": 80, "neutral": 10, "sad": 5, "angry": 5, "fear": 0, "surprise": 0, "disgust": 0,
	}, scoring.Ok(0.9), scoring.Failed(nil))

	rec := NewRecord("predict", res)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "predict", got.Source)
	assert.Equal(t, res.Label, got.Label)
	assert.Equal(t, res.Explanation, got.Explanation)
	assert.InDelta(t, res.FinalScore, got.FinalScore, 1e-12)
	assert.Equal(t, []string{scoring.SignalAudio}, got.FailedSignals)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestGet_NotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	for i, label := range []string{scoring.LabelTruth, scoring.LabelLie, scoring.LabelUnknown} {
		rec := NewRecord("api", scoring.Result{Label: label})
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Save(ctx, rec))
	}

	all, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, scoring.LabelUnknown, all[0].Label)
	assert.Equal(t, scoring.LabelTruth, all[2].Label)

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestList_Empty(t *testing.T) {
	s := setupTestStore(t)
	all, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("oracle"), "")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	assert.Equal(t, "WHERE a = $1 AND b = $2", pg.rebind("WHERE a = ? AND b = ?"))

	lite := &Store{driver: DriverSQLite}
	assert.Equal(t, "WHERE a = ?", lite.rebind("WHERE a = ?"))
}
