package model

import "time"

// ExecutionState is the single source of truth for one agent run.
// Ownership model:
//   - One ExecutionState is created per run and owned exclusively by that
//     run; it is passed by reference through every engine state.
//   - Mutations happen only at state-transition boundaries inside the
//     engine, never concurrently, so no mutex is required.
//   - History and Errors are append-only; they are never truncated or
//     reordered, because downstream states reason over the full record.
type ExecutionState struct {
	// Goal is the user's original request, immutable for the run.
	Goal string

	// Plan is the ordered step list produced once by PLANNING.
	// Set once, never mutated afterwards.
	Plan []string

	// CurrentStep is the cursor into Plan; monotonically non-decreasing
	// and clamped to len(Plan).
	CurrentStep int

	// History records every attempted tool invocation in order.
	History []ToolExecution

	// IterationCount counts trips through the select->execute->analyze
	// loop. The engine forces synthesis once it reaches the configured cap.
	IterationCount int

	// NeedsMoreInfo is the analyzer's verdict for the current iteration.
	NeedsMoreInfo bool

	// FinalAnswer is set exactly once, by SYNTHESIZING.
	FinalAnswer string

	// Errors collects every recovered failure for observability.
	// Nothing in here is fatal to the run.
	Errors []ErrorRecord
}

// ToolExecution is one entry in the run history.
type ToolExecution struct {
	Step    int            `json:"step"`
	Tool    string         `json:"tool"`
	Params  map[string]any `json:"params,omitempty"`
	Result  string         `json:"result,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
}

// ErrorRecord is a recovered, non-fatal failure surfaced to the caller.
type ErrorRecord struct {
	Kind    string    `json:"kind"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// RunResult is what the run entry point returns to the caller.
type RunResult struct {
	FinalAnswer string          `json:"final_answer"`
	Plan        []string        `json:"plan"`
	History     []ToolExecution `json:"history"`
	Errors      []ErrorRecord   `json:"errors"`
	Iterations  int             `json:"iterations"`
}

// Snapshot is an immutable copy of the interesting ExecutionState fields,
// handed to observers after every state transition. It is a pass-through
// side channel, never a control input.
type Snapshot struct {
	Goal           string   `json:"goal"`
	PlanLen        int      `json:"plan_len"`
	CurrentStep    int      `json:"current_step"`
	HistoryLen     int      `json:"history_len"`
	IterationCount int      `json:"iteration_count"`
	NeedsMoreInfo  bool     `json:"needs_more_info"`
	ErrorCount     int      `json:"error_count"`
	LastTool       string   `json:"last_tool,omitempty"`
	FinalAnswerSet bool     `json:"final_answer_set"`
	Plan           []string `json:"plan,omitempty"`
}

// SnapshotOf builds a Snapshot from the current state.
func SnapshotOf(s *ExecutionState) Snapshot {
	snap := Snapshot{
		Goal:           s.Goal,
		PlanLen:        len(s.Plan),
		CurrentStep:    s.CurrentStep,
		HistoryLen:     len(s.History),
		IterationCount: s.IterationCount,
		NeedsMoreInfo:  s.NeedsMoreInfo,
		ErrorCount:     len(s.Errors),
		FinalAnswerSet: s.FinalAnswer != "",
		Plan:           append([]string(nil), s.Plan...),
	}
	if n := len(s.History); n > 0 {
		snap.LastTool = s.History[n-1].Tool
	}
	return snap
}

// AddError appends a recovered failure to the error log.
func (s *ExecutionState) AddError(kind, stage, message string) {
	s.Errors = append(s.Errors, ErrorRecord{
		Kind:    kind,
		Stage:   stage,
		Message: message,
		Time:    time.Now().UTC(),
	})
}

// Result converts the terminal state into the caller-facing RunResult.
func (s *ExecutionState) Result() *RunResult {
	return &RunResult{
		FinalAnswer: s.FinalAnswer,
		Plan:        append([]string(nil), s.Plan...),
		History:     append([]ToolExecution(nil), s.History...),
		Errors:      append([]ErrorRecord(nil), s.Errors...),
		Iterations:  s.IterationCount,
	}
}
