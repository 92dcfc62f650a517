package journal

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decision-agent-poc-v1/agent/internal/agent/engine"
	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
)

func newTestJournal(t *testing.T) (*RedisJournal, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisJournal(rdb, time.Hour), mr
}

func record(runID, state string, iteration int) TransitionRecord {
	return TransitionRecord{
		RunID: runID,
		State: state,
		Snap:  model.Snapshot{Goal: "g", IterationCount: iteration},
		At:    time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}
}

func TestJournalRecordAndReadPreservesOrder(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, record("run-1", "START", 0)))
	require.NoError(t, j.Record(ctx, record("run-1", "PLANNING", 0)))
	require.NoError(t, j.Record(ctx, record("run-1", "SELECTING", 1)))

	recs, err := j.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "START", recs[0].State)
	assert.Equal(t, "PLANNING", recs[1].State)
	assert.Equal(t, "SELECTING", recs[2].State)
	assert.Equal(t, 1, recs[2].Snap.IterationCount)
}

func TestJournalRunsAreIsolated(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, record("run-a", "START", 0)))
	require.NoError(t, j.Record(ctx, record("run-b", "START", 0)))
	require.NoError(t, j.Record(ctx, record("run-b", "PLANNING", 0)))

	recsA, err := j.ReadRun(ctx, "run-a")
	require.NoError(t, err)
	assert.Len(t, recsA, 1)

	recsB, err := j.ReadRun(ctx, "run-b")
	require.NoError(t, err)
	assert.Len(t, recsB, 2)
}

func TestJournalReadMissingRunIsEmpty(t *testing.T) {
	j, _ := newTestJournal(t)
	recs, err := j.ReadRun(context.Background(), "never-ran")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestJournalSetsTTL(t *testing.T) {
	j, mr := newTestJournal(t)
	require.NoError(t, j.Record(context.Background(), record("run-ttl", "START", 0)))

	ttl := mr.TTL("run:run-ttl:transitions")
	assert.Equal(t, time.Hour, ttl)
}

func TestJournalClearRun(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, record("run-x", "START", 0)))
	require.NoError(t, j.ClearRun(ctx, "run-x"))

	recs, err := j.ReadRun(ctx, "run-x")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestHookJournalsEngineTransitions(t *testing.T) {
	j, _ := newTestJournal(t)
	hook := Hook(j, "run-hooked")

	hook(engine.StateStart, model.Snapshot{Goal: "g"})
	hook(engine.StatePlanning, model.Snapshot{Goal: "g", PlanLen: 2})

	recs, err := j.ReadRun(context.Background(), "run-hooked")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, string(engine.StateStart), recs[0].State)
	assert.Equal(t, string(engine.StatePlanning), recs[1].State)
	assert.Equal(t, 2, recs[1].Snap.PlanLen)
}

func TestHookSwallowsJournalFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	j := NewRedisJournal(rdb, time.Hour)
	mr.Close()
	_ = rdb.Close()

	hook := Hook(j, "run-dead")
	// must not panic even though redis is gone
	hook(engine.StateStart, model.Snapshot{})
}
