package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
)

func TestTransitionTable(t *testing.T) {
	needsMore := &model.ExecutionState{NeedsMoreInfo: true}
	satisfied := &model.ExecutionState{NeedsMoreInfo: false}

	tests := []struct {
		name    string
		current State
		state   *model.ExecutionState
		want    State
	}{
		{"start begins planning", StateStart, satisfied, StatePlanning},
		{"planning always selects", StatePlanning, satisfied, StateSelecting},
		{"selecting always executes", StateSelecting, satisfied, StateExecuting},
		{"executing always analyzes", StateExecuting, satisfied, StateAnalyzing},
		{"analyzing loops when more info is needed", StateAnalyzing, needsMore, StateSelecting},
		{"analyzing synthesizes when satisfied", StateAnalyzing, satisfied, StateSynthesizing},
		{"synthesizing ends", StateSynthesizing, needsMore, StateEnd},
		{"end is absorbing", StateEnd, needsMore, StateEnd},
		{"unknown state ends", State("BOGUS"), needsMore, StateEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transition(tt.current, tt.state))
		})
	}
}

func TestTransitionDoesNotMutateState(t *testing.T) {
	s := &model.ExecutionState{
		Goal:          "goal",
		Plan:          []string{"a", "b"},
		NeedsMoreInfo: true,
	}
	before := *s
	_ = Transition(StateAnalyzing, s)
	assert.Equal(t, before.Goal, s.Goal)
	assert.Equal(t, before.Plan, s.Plan)
	assert.Equal(t, before.NeedsMoreInfo, s.NeedsMoreInfo)
	assert.Equal(t, before.CurrentStep, s.CurrentStep)
}
