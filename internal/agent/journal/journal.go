// Package journal records run transitions for offline inspection. The
// journal is write-only from the engine's point of view: nothing in the run
// ever reads it back, so a broken journal can never affect a run.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
	errx "github.com/decision-agent-poc-v1/agent/internal/core/error"
	logx "github.com/decision-agent-poc-v1/agent/pkg/logger"
)

// TransitionRecord is one journal row, captured after each state transition.
type TransitionRecord struct {
	RunID string         `json:"run_id"`
	State string         `json:"state"`
	Snap  model.Snapshot `json:"snapshot"`
	At    time.Time      `json:"at"`
}

// Journal persists transition records for a run.
type Journal interface {
	Record(ctx context.Context, rec TransitionRecord) error
	ReadRun(ctx context.Context, runID string) ([]TransitionRecord, error)
	ClearRun(ctx context.Context, runID string) error
}

type RedisJournal struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisJournal(rdb redis.Cmdable, ttl time.Duration) *RedisJournal {
	return &RedisJournal{rdb: rdb, ttl: ttl}
}

func (j *RedisJournal) runKey(runID string) string {
	return fmt.Sprintf("run:%s:transitions", runID)
}

func (j *RedisJournal) Record(ctx context.Context, rec TransitionRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("runID", rec.RunID).Msg("failed to marshal transition record")
		return fmt.Errorf("marshal transition record: %w", err)
	}
	key := j.runKey(rec.RunID)

	if err := j.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push transition record to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if j.ttl > 0 {
		if ok, err := j.rdb.Expire(ctx, key, j.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", j.ttl).Msg("failed to set TTL on run key")
		}
	}
	return nil
}

func (j *RedisJournal) ReadRun(ctx context.Context, runID string) ([]TransitionRecord, error) {
	key := j.runKey(runID)

	rows, err := j.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []TransitionRecord{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load run journal from redis")
		return nil, errx.WrapRedis(err)
	}

	recs := make([]TransitionRecord, 0, len(rows))
	for i, s := range rows {
		var rec TransitionRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logx.Error().Err(err).Str("runID", runID).Int("index", i).Msg("failed to unmarshal transition record")
			return nil, fmt.Errorf("unmarshal transition record at index %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (j *RedisJournal) ClearRun(ctx context.Context, runID string) error {
	key := j.runKey(runID)
	if err := j.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete run journal from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Journal = (*RedisJournal)(nil)

// Nop discards every record. Used when no Redis is configured.
type Nop struct{}

func (Nop) Record(context.Context, TransitionRecord) error { return nil }
func (Nop) ReadRun(context.Context, string) ([]TransitionRecord, error) {
	return []TransitionRecord{}, nil
}
func (Nop) ClearRun(context.Context, string) error { return nil }

var _ Journal = Nop{}
