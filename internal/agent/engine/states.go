package engine

import (
	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
)

// State names one node of the run state machine.
type State string

const (
	StateStart        State = "START"
	StatePlanning     State = "PLANNING"
	StateSelecting    State = "SELECTING"
	StateExecuting    State = "EXECUTING"
	StateAnalyzing    State = "ANALYZING"
	StateSynthesizing State = "SYNTHESIZING"
	StateEnd          State = "END"
)

// Transition is the pure transition function of the run state machine:
//
//	START -> PLANNING -> SELECTING -> EXECUTING -> ANALYZING
//	ANALYZING -> SELECTING   (analyzer wants more evidence)
//	ANALYZING -> SYNTHESIZING (analyzer is satisfied, or the cap forced it)
//	SYNTHESIZING -> END
//
// It reads ExecutionState but never mutates it, so it is testable without
// invoking the reasoning oracle. The only conditional edge is ANALYZING's,
// driven by NeedsMoreInfo, which the ANALYZING handler has already clamped
// under the iteration cap.
func Transition(current State, s *model.ExecutionState) State {
	switch current {
	case StateStart:
		return StatePlanning
	case StatePlanning:
		return StateSelecting
	case StateSelecting:
		return StateExecuting
	case StateExecuting:
		return StateAnalyzing
	case StateAnalyzing:
		if s.NeedsMoreInfo {
			return StateSelecting
		}
		return StateSynthesizing
	case StateSynthesizing:
		return StateEnd
	default:
		return StateEnd
	}
}
