package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
	"github.com/decision-agent-poc-v1/agent/internal/agent/oracle"
	"github.com/decision-agent-poc-v1/agent/internal/agent/parsers"
	"github.com/decision-agent-poc-v1/agent/internal/agent/prompts"
	"github.com/decision-agent-poc-v1/agent/internal/agent/tools"
	errx "github.com/decision-agent-poc-v1/agent/internal/core/error"
	logx "github.com/decision-agent-poc-v1/agent/pkg/logger"
)

const (
	DefaultMaxIterations = 10

	// maxResultSnippet bounds how much of a raw tool result is fed back
	// into analyzer and synthesizer prompts.
	maxResultSnippet = 3000
)

// TransitionHook observes the machine after every state transition. It is a
// pass-through side channel for logging and tracing, never a control input.
type TransitionHook func(state State, snap model.Snapshot)

// Config tunes a single Engine instance.
type Config struct {
	MaxIterations int
	Planner       model.PlannerPromptConfig
}

// Engine drives one goal through the run state machine. The oracle and the
// registry are process-wide and shared read-only; each Run owns its
// ExecutionState exclusively and mutates it only between states.
type Engine struct {
	oracle        oracle.Completer
	registry      *tools.Registry
	maxIterations int
	plannerCfg    model.PlannerPromptConfig
	hooks         []TransitionHook
}

// Option customizes Engine construction.
type Option func(*Engine)

// WithTransitionHook registers an observer called after every transition.
func WithTransitionHook(h TransitionHook) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = append(e.hooks, h)
		}
	}
}

// New builds an Engine over a reasoning oracle and a tool registry.
func New(completer oracle.Completer, registry *tools.Registry, cfg Config, opts ...Option) (*Engine, error) {
	if completer == nil {
		return nil, fmt.Errorf("oracle completer is nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	e := &Engine{
		oracle:        completer,
		registry:      registry,
		maxIterations: maxIterations,
		plannerCfg:    cfg.Planner,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// pendingSelection is the SELECTING verdict handed to EXECUTING. A degraded
// verdict (Invalid) still flows through EXECUTING so the run records a
// failed no-op step instead of crashing.
type pendingSelection struct {
	Tool    string
	Params  map[string]any
	Invalid bool
	Reason  string
}

// Run executes one goal to completion. The run is total: whatever the
// oracle or the tools do, it reaches END in bounded steps with a non-empty
// final answer. Cancellation is honored between states only; a canceled run
// returns ctx.Err() and its partial state is discarded.
func (e *Engine) Run(ctx context.Context, goal string) (*model.RunResult, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, fmt.Errorf("goal is empty")
	}

	s := &model.ExecutionState{Goal: goal, NeedsMoreInfo: true}
	var pending *pendingSelection

	state := StateStart
	e.observe(state, s)

	for state != StateEnd {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state = Transition(state, s)
		switch state {
		case StatePlanning:
			e.plan(ctx, s)
		case StateSelecting:
			pending = e.selectTool(ctx, s)
		case StateExecuting:
			e.execute(ctx, s, pending)
			pending = nil
		case StateAnalyzing:
			e.analyze(ctx, s)
		case StateSynthesizing:
			e.synthesize(ctx, s)
		case StateEnd:
			// terminal; nothing to do
		}
		e.observe(state, s)
	}

	return s.Result(), nil
}

func (e *Engine) observe(state State, s *model.ExecutionState) {
	snap := model.SnapshotOf(s)
	logx.Debug().
		Str("state", string(state)).
		Int("iteration", snap.IterationCount).
		Int("step", snap.CurrentStep).
		Int("history", snap.HistoryLen).
		Bool("needs_more_info", snap.NeedsMoreInfo).
		Msg("state transition")
	for _, h := range e.hooks {
		h(state, snap)
	}
}

// ===== PLANNING =====

// plan asks the oracle for a step list. Planning never fails the run: on
// transport or parse failure the whole goal becomes a single-step plan.
func (e *Engine) plan(ctx context.Context, s *model.ExecutionState) {
	fallback := []string{s.Goal}

	sys, err := prompts.RenderPlannerSystem(ctx, e.registry.Describe(), e.plannerCfg)
	if err != nil {
		s.AddError(string(errx.KindParse), string(StatePlanning), err.Error())
		s.Plan = fallback
		return
	}

	raw, err := e.oracle.Complete(ctx, []*schema.Message{
		schema.SystemMessage(sys),
		schema.UserMessage(fmt.Sprintf("User Goal: %s\n\nCreate a plan to achieve this goal.", s.Goal)),
	})
	if err != nil {
		s.AddError(string(errorKind(err)), string(StatePlanning), err.Error())
		s.Plan = fallback
		logx.Warn().Err(err).Msg("Planner oracle failed; using single-step fallback plan")
		return
	}

	steps, err := parsers.ParsePlan(raw)
	if err != nil {
		s.AddError(string(errx.KindParse), string(StatePlanning), err.Error())
		s.Plan = fallback
		logx.Warn().Err(err).Msg("Planner output unparseable; using single-step fallback plan")
		return
	}

	s.Plan = steps
	logx.Debug().Int("steps", len(steps)).Msg("Plan created")
}

// ===== SELECTING =====

func (e *Engine) selectTool(ctx context.Context, s *model.ExecutionState) *pendingSelection {
	currentTask := s.Goal
	if s.CurrentStep < len(s.Plan) {
		currentTask = s.Plan[s.CurrentStep]
	}

	degraded := func(toolName, reason string, kind errx.Kind) *pendingSelection {
		s.AddError(string(kind), string(StateSelecting), reason)
		logx.Warn().Str("tool", toolName).Str("reason", reason).Msg("Degrading to no-op tool step")
		return &pendingSelection{Tool: toolName, Invalid: true, Reason: reason}
	}

	sys, err := prompts.RenderSelectorSystem(ctx, e.registry.Describe())
	if err != nil {
		return degraded("", err.Error(), errx.KindParse)
	}

	raw, err := e.oracle.Complete(ctx, []*schema.Message{
		schema.SystemMessage(sys),
		schema.UserMessage(selectorContext(s, currentTask)),
	})
	if err != nil {
		return degraded("", err.Error(), errorKind(err))
	}

	sel, err := parsers.ParseToolSelection(raw, e.registry.Names())
	if err != nil {
		return degraded("", err.Error(), errx.KindParse)
	}

	e.sanitizeSelection(sel, s)

	clean, err := e.registry.Validate(sel.Tool, sel.Parameters)
	if err != nil {
		return degraded(sel.Tool, err.Error(), errx.KindValidation)
	}

	logx.Debug().Str("tool", sel.Tool).Msg("Tool selected")
	return &pendingSelection{Tool: sel.Tool, Params: clean}
}

// selectorContext assembles the SELECTING prompt context: goal, plan,
// current task and the full history so far.
func selectorContext(s *model.ExecutionState, currentTask string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current Task: %s\n\n", currentTask)
	fmt.Fprintf(&b, "User's Original Goal: %s\n\n", s.Goal)
	if len(s.Plan) > 0 {
		fmt.Fprintf(&b, "Plan:\n")
		for i, step := range s.Plan {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}
	if len(s.History) > 0 {
		fmt.Fprintf(&b, "Executed so far (%d tool calls):\n", len(s.History))
		for _, h := range s.History {
			status := "ok"
			if !h.Success {
				status = "failed: " + h.Error
			}
			fmt.Fprintf(&b, "- step %d %s (%s)\n", h.Step, h.Tool, status)
		}
		b.WriteString("\n")
	}
	b.WriteString("Select the appropriate tool and parameters for this task.")
	return b.String()
}

var ratingBoundRe = regexp.MustCompile(`(?i)(below|under|less than)\s*([0-9]\.?[0-9]?)`)

// sanitizeSelection applies deterministic parameter hygiene before schema
// validation: default operations, subset propagation from the latest
// search, and rating bounds inferred from the goal.
func (e *Engine) sanitizeSelection(sel *parsers.ToolSelection, s *model.ExecutionState) {
	switch sel.Tool {
	case tools.ToolSearchProducts:
		if sel.Parameters["category"] == nil && sel.Parameters["keyword"] == nil {
			sel.Parameters["category"] = s.Goal
		}
		if sel.Parameters["max_rating"] == nil {
			if m := ratingBoundRe.FindStringSubmatch(s.Goal); m != nil {
				if v, err := strconv.ParseFloat(m[2], 64); err == nil {
					sel.Parameters["max_rating"] = v
				}
			}
		}
	case tools.ToolAnalyzeReviews:
		if sel.Parameters["product_names"] == nil &&
			sel.Parameters["product_name"] == nil &&
			sel.Parameters["category"] == nil {
			if names := lastSearchProductNames(s); len(names) > 0 {
				sel.Parameters["product_names"] = names
			}
		}
	case tools.ToolCalculateStatistics:
		if sel.Parameters["operation"] == nil {
			sel.Parameters["operation"] = tools.OpSummary
		}
		if sel.Parameters["product_names"] == nil && sel.Parameters["categories"] == nil {
			if names := lastSearchProductNames(s); len(names) > 0 {
				sel.Parameters["product_names"] = names
			}
		}
	}
}

// lastSearchProductNames extracts product names from the most recent
// successful search result, so downstream tools keep operating on the same
// subset.
func lastSearchProductNames(s *model.ExecutionState) []any {
	for i := len(s.History) - 1; i >= 0; i-- {
		h := s.History[i]
		if h.Tool != tools.ToolSearchProducts || !h.Success {
			continue
		}
		var result struct {
			Products []struct {
				Name string `json:"product_name"`
			} `json:"products"`
		}
		if err := json.Unmarshal([]byte(h.Result), &result); err != nil {
			return nil
		}
		names := make([]any, 0, len(result.Products))
		for _, p := range result.Products {
			if p.Name != "" {
				names = append(names, p.Name)
			}
		}
		return names
	}
	return nil
}

// ===== EXECUTING =====

// execute dispatches the pending selection. Any failure, including a
// panicking tool, becomes a history record with Success=false; nothing
// propagates.
func (e *Engine) execute(ctx context.Context, s *model.ExecutionState, pending *pendingSelection) {
	if pending == nil {
		pending = &pendingSelection{Invalid: true, Reason: "no tool selection available"}
	}

	record := model.ToolExecution{
		Step:   s.CurrentStep + 1,
		Tool:   pending.Tool,
		Params: pending.Params,
	}
	if record.Tool == "" {
		record.Tool = "noop"
	}

	if pending.Invalid {
		record.Error = pending.Reason
		s.History = append(s.History, record)
		return
	}

	out, err := e.invoke(ctx, pending.Tool, pending.Params)
	if err != nil {
		record.Error = err.Error()
		s.AddError(string(errx.KindTool), string(StateExecuting), err.Error())
		logx.Warn().Err(err).Str("tool", pending.Tool).Msg("Tool execution failed")
	} else {
		record.Success = true
		record.Result = out
		logx.Debug().Str("tool", pending.Tool).Msg("Tool executed")
	}
	s.History = append(s.History, record)

	// The cursor advances on every dispatched attempt, capped at the plan
	// length so it stays a valid index for the analyzer fallback.
	if s.CurrentStep < len(s.Plan) {
		s.CurrentStep++
	}
}

// invoke shields the engine from misbehaving tools.
func (e *Engine) invoke(ctx context.Context, name string, params map[string]any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("tool %q panicked: %v", name, r)
		}
	}()
	return e.registry.Invoke(ctx, name, params)
}

// ===== ANALYZING =====

// analyze asks the oracle whether the gathered evidence suffices, applies
// the parse fallback, then clamps the verdict under the iteration cap. The
// cap is the machine's single liveness guarantee.
func (e *Engine) analyze(ctx context.Context, s *model.ExecutionState) {
	needsMore := e.analyzerVerdict(ctx, s)

	s.IterationCount++
	if s.IterationCount >= e.maxIterations {
		if needsMore {
			logx.Warn().
				Int("iteration", s.IterationCount).
				Int("max_iterations", e.maxIterations).
				Msg("Iteration cap reached; forcing synthesis")
		}
		needsMore = false
	}
	s.NeedsMoreInfo = needsMore
}

func (e *Engine) analyzerVerdict(ctx context.Context, s *model.ExecutionState) bool {
	// Conservative default when the analyzer cannot be consulted: continue
	// only if the last attempt produced evidence and plan steps remain.
	// A failed attempt stops the loop instead of burning iterations on a
	// broken oracle or tool.
	progressed := len(s.History) > 0 && s.History[len(s.History)-1].Success
	fallback := progressed && s.CurrentStep < len(s.Plan)

	sys, err := prompts.RenderAnalyzerSystem(ctx)
	if err != nil {
		s.AddError(string(errx.KindParse), string(StateAnalyzing), err.Error())
		return fallback
	}

	raw, err := e.oracle.Complete(ctx, []*schema.Message{
		schema.SystemMessage(sys),
		schema.UserMessage(analyzerContext(s)),
	})
	if err != nil {
		s.AddError(string(errorKind(err)), string(StateAnalyzing), err.Error())
		return fallback
	}

	decision, err := parsers.ParseAnalyzerDecision(raw)
	if err != nil {
		s.AddError(string(errx.KindParse), string(StateAnalyzing), err.Error())
		return fallback
	}
	return decision.NeedsMoreInfo()
}

func analyzerContext(s *model.ExecutionState) string {
	latest := "None"
	if n := len(s.History); n > 0 {
		h := s.History[n-1]
		if h.Success {
			latest = fmt.Sprintf("%s -> %s", h.Tool, truncate(h.Result, maxResultSnippet))
		} else {
			latest = fmt.Sprintf("%s failed: %s", h.Tool, h.Error)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Goal: %s\n\n", s.Goal)
	fmt.Fprintf(&b, "Plan: %s\n\n", strings.Join(s.Plan, "; "))
	fmt.Fprintf(&b, "Current Progress: Step %d of %d\n\n", s.CurrentStep, len(s.Plan))
	fmt.Fprintf(&b, "Latest Results: %s\n\n", latest)
	b.WriteString("Analyze and decide next action.")
	return b.String()
}

// ===== SYNTHESIZING =====

// synthesize produces the final answer. On oracle failure it falls back to
// a templated summary built mechanically from the history, so FinalAnswer
// is never empty at END.
func (e *Engine) synthesize(ctx context.Context, s *model.ExecutionState) {
	sys, err := prompts.RenderSynthesizerSystem(ctx)
	if err == nil {
		var raw string
		raw, err = e.oracle.Complete(ctx, []*schema.Message{
			schema.SystemMessage(sys),
			schema.UserMessage(synthesizerContext(s)),
		})
		if err == nil && strings.TrimSpace(raw) != "" {
			s.FinalAnswer = raw
			return
		}
		if err == nil {
			err = fmt.Errorf("empty synthesis from oracle")
		}
	}

	s.AddError(string(errorKind(err)), string(StateSynthesizing), err.Error())
	logx.Warn().Err(err).Msg("Synthesizer oracle failed; building templated answer from history")
	s.FinalAnswer = templatedAnswer(s)
}

func synthesizerContext(s *model.ExecutionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User's Original Goal: %s\n\nResearch Results:\n", s.Goal)
	for _, h := range s.History {
		if !h.Success {
			continue
		}
		fmt.Fprintf(&b, "\n**Step %d: %s**\n%s\n", h.Step, h.Tool, formatResult(h.Result))
	}
	b.WriteString("\nSynthesize these findings into a clear, actionable response for the user.")
	return b.String()
}

// formatResult prefers a tool's own summary field and otherwise truncates
// the raw result.
func formatResult(raw string) string {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		if summary, ok := payload["summary"].(string); ok && summary != "" {
			return summary
		}
	}
	return truncate(raw, maxResultSnippet)
}

// templatedAnswer is the synthesizer's mechanical fallback. It must produce
// a non-empty answer even with an empty history.
func templatedAnswer(s *model.ExecutionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary of gathered evidence for: %s\n", s.Goal)

	wrote := false
	for _, h := range s.History {
		if !h.Success {
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %s\n", h.Tool, formatResult(h.Result))
		wrote = true
	}
	if !wrote {
		b.WriteString("\nNo tool results could be gathered for this goal. ")
		b.WriteString("Please retry, or rephrase the request with a specific category, price range or rating filter.")
	}
	return b.String()
}

// ===== helpers =====

func errorKind(err error) errx.Kind {
	if oracle.IsTransport(err) {
		return errx.KindTransport
	}
	if kind := errx.KindOf(err); kind != errx.KindInternal {
		return kind
	}
	return errx.KindParse
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n...(truncated)"
}
