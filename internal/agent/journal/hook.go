package journal

import (
	"context"
	"time"

	"github.com/decision-agent-poc-v1/agent/internal/agent/engine"
	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
	logx "github.com/decision-agent-poc-v1/agent/pkg/logger"
)

// recordTimeout bounds how long one journal write may stall a run.
const recordTimeout = 2 * time.Second

// Hook adapts a Journal into an engine transition hook for one run. Journal
// failures are logged and dropped; the run never sees them.
func Hook(j Journal, runID string) engine.TransitionHook {
	return func(state engine.State, snap model.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		rec := TransitionRecord{
			RunID: runID,
			State: string(state),
			Snap:  snap,
			At:    time.Now().UTC(),
		}
		if err := j.Record(ctx, rec); err != nil {
			logx.Warn().Err(err).Str("runID", runID).Str("state", string(state)).Msg("failed to journal transition")
		}
	}
}
