package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
	"github.com/decision-agent-poc-v1/agent/internal/agent/oracle"
	"github.com/decision-agent-poc-v1/agent/internal/agent/tools"
	errx "github.com/decision-agent-poc-v1/agent/internal/core/error"
)

// oracleFunc adapts a function into the Completer contract for tests.
type oracleFunc func(ctx context.Context, msgs []*schema.Message) (string, error)

func (f oracleFunc) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	return f(ctx, msgs)
}

var _ oracle.Completer = oracleFunc(nil)

// routeOracle dispatches on the engine's prompt shape so scripts stay
// readable: one function per state regardless of call ordering.
type routeOracle struct {
	plan      func(call int) (string, error)
	selection func(call int) (string, error)
	analysis  func(call int) (string, error)
	synthesis func(call int) (string, error)

	planCalls, selectionCalls, analysisCalls, synthesisCalls int
}

func (r *routeOracle) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	user := msgs[len(msgs)-1].Content
	switch {
	case strings.Contains(user, "Create a plan"):
		r.planCalls++
		return r.plan(r.planCalls)
	case strings.Contains(user, "Select the appropriate tool"):
		r.selectionCalls++
		return r.selection(r.selectionCalls)
	case strings.Contains(user, "Analyze and decide"):
		r.analysisCalls++
		return r.analysis(r.analysisCalls)
	case strings.Contains(user, "Synthesize these findings"):
		r.synthesisCalls++
		return r.synthesis(r.synthesisCalls)
	default:
		return "", fmt.Errorf("unrecognized prompt: %q", user)
	}
}

func fixed(s string) func(int) (string, error) {
	return func(int) (string, error) { return s, nil }
}

func newTestEngine(t *testing.T, o oracle.Completer, maxIterations int, opts ...Option) *Engine {
	t.Helper()
	reg, err := tools.NewDefaultRegistry()
	require.NoError(t, err)
	eng, err := New(o, reg, Config{MaxIterations: maxIterations}, opts...)
	require.NoError(t, err)
	return eng
}

func errorKinds(errs []model.ErrorRecord) []string {
	kinds := make([]string, 0, len(errs))
	for _, e := range errs {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestRunHappyPathThreeStepPlan(t *testing.T) {
	o := &routeOracle{
		plan: fixed(`["Search for bluetooth speakers", "Analyze their reviews", "Rank them by rating"]`),
		selection: func(call int) (string, error) {
			switch call {
			case 1:
				return `{"tool": "search_products", "parameters": {"category": "Speakers"}}`, nil
			case 2:
				return `{"tool": "analyze_reviews", "parameters": {"category": "Speakers", "analysis_type": "complaints"}}`, nil
			default:
				return `{"tool": "calculate_statistics", "parameters": {"operation": "rating_ranking", "categories": ["Speakers"]}}`, nil
			}
		},
		analysis: func(call int) (string, error) {
			if call < 3 {
				return `{"sufficient": false, "reasoning": "plan steps remain", "next_action": "continue"}`, nil
			}
			return `{"sufficient": true, "reasoning": "all evidence gathered", "next_action": "synthesize"}`, nil
		},
		synthesis: fixed("The speakers with the best value are listed below."),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), "Which bluetooth speakers are worth buying?")
	require.NoError(t, err)

	assert.Equal(t, "The speakers with the best value are listed below.", result.FinalAnswer)
	assert.Len(t, result.Plan, 3)
	assert.Equal(t, 3, result.Iterations)
	require.Len(t, result.History, 3)
	for i, h := range result.History {
		assert.True(t, h.Success, "history entry %d should succeed", i)
		assert.Equal(t, i+1, h.Step)
	}
	assert.Equal(t, tools.ToolSearchProducts, result.History[0].Tool)
	assert.Equal(t, tools.ToolAnalyzeReviews, result.History[1].Tool)
	assert.Equal(t, tools.ToolCalculateStatistics, result.History[2].Tool)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, o.synthesisCalls)
}

func TestRunIterationCapForcesSynthesis(t *testing.T) {
	o := &routeOracle{
		plan:      fixed(`["Keep researching the catalog"]`),
		selection: fixed(`{"tool": "search_products", "parameters": {"category": "Electronics"}}`),
		// The analyzer never concedes; only the cap ends the run.
		analysis:  fixed(`{"sufficient": false, "reasoning": "never enough", "next_action": "continue"}`),
		synthesis: fixed("Forced summary."),
	}

	result, err := newTestEngine(t, o, 3).Run(context.Background(), "Research the catalog forever")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Iterations)
	assert.Len(t, result.History, 3)
	assert.Equal(t, 3, o.analysisCalls)
	assert.Equal(t, 1, o.synthesisCalls)
	assert.Equal(t, "Forced summary.", result.FinalAnswer)
}

func TestRunUnknownToolDegradesToNoop(t *testing.T) {
	o := &routeOracle{
		plan:      fixed(`["Check the weather"]`),
		selection: fixed(`{"tool": "fetch_weather", "parameters": {"city": "Pune"}}`),
		analysis:  fixed(`{"sufficient": true, "reasoning": "nothing more to try", "next_action": "synthesize"}`),
		synthesis: fixed("The catalog has no weather data."),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), "What is the weather like?")
	require.NoError(t, err)

	require.Len(t, result.History, 1)
	assert.False(t, result.History[0].Success)
	assert.Equal(t, "fetch_weather", result.History[0].Tool)
	assert.Contains(t, errorKinds(result.Errors), string(errx.KindValidation))
	assert.Equal(t, "The catalog has no weather data.", result.FinalAnswer)
}

func TestRunInvalidParamsDegradeToNoop(t *testing.T) {
	o := &routeOracle{
		plan: fixed(`["Compute statistics"]`),
		// operation violates the declared enum
		selection: fixed(`{"tool": "calculate_statistics", "parameters": {"operation": "word_count"}}`),
		analysis:  fixed(`{"sufficient": true, "reasoning": "give up", "next_action": "synthesize"}`),
		synthesis: fixed("No statistics could be computed."),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), "Count words")
	require.NoError(t, err)

	require.Len(t, result.History, 1)
	assert.False(t, result.History[0].Success)
	assert.Contains(t, errorKinds(result.Errors), string(errx.KindValidation))
}

func TestRunEmptyPlannerOutputFallsBackToGoal(t *testing.T) {
	goal := "Summarize the catalog"
	o := &routeOracle{
		plan:      fixed("   \n  "),
		selection: fixed(`{"tool": "calculate_statistics", "parameters": {"operation": "summary"}}`),
		analysis:  fixed(`{"sufficient": true, "reasoning": "done", "next_action": "synthesize"}`),
		synthesis: fixed("Catalog summary."),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), goal)
	require.NoError(t, err)

	assert.Equal(t, []string{goal}, result.Plan)
	assert.Contains(t, errorKinds(result.Errors), string(errx.KindParse))
	assert.Equal(t, "Catalog summary.", result.FinalAnswer)
}

func TestRunTotalOracleOutageStillAnswers(t *testing.T) {
	down := oracleFunc(func(ctx context.Context, msgs []*schema.Message) (string, error) {
		return "", &oracle.TransportError{Err: fmt.Errorf("connection refused")}
	})

	result, err := newTestEngine(t, down, 10).Run(context.Background(), "Anything at all")
	require.NoError(t, err)

	assert.Equal(t, []string{"Anything at all"}, result.Plan)
	assert.NotEmpty(t, result.FinalAnswer)
	assert.Contains(t, result.FinalAnswer, "No tool results")
	// single-step fallback plan, degraded no-op, analyzer fallback ends the loop
	assert.Equal(t, 1, result.Iterations)
	require.Len(t, result.History, 1)
	assert.False(t, result.History[0].Success)
	assert.Contains(t, errorKinds(result.Errors), string(errx.KindTransport))
}

func TestRunUnparseableAnalyzerUsesPlanCursorFallback(t *testing.T) {
	o := &routeOracle{
		plan: fixed(`["Search products", "Rank them"]`),
		selection: func(call int) (string, error) {
			if call == 1 {
				return `{"tool": "search_products", "parameters": {"category": "Speakers"}}`, nil
			}
			return `{"tool": "calculate_statistics", "parameters": {"operation": "rating_ranking"}}`, nil
		},
		// never valid JSON; the cursor fallback must drive the loop
		analysis:  fixed("hmm, hard to say"),
		synthesis: fixed("Ranked results."),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), "Rank the speakers")
	require.NoError(t, err)

	// fallback continues while plan steps remain, then stops
	assert.Equal(t, 2, result.Iterations)
	assert.Len(t, result.History, 2)
	assert.Contains(t, errorKinds(result.Errors), string(errx.KindParse))
	assert.Equal(t, "Ranked results.", result.FinalAnswer)
}

func TestRunEmptySynthesisFallsBackToTemplatedAnswer(t *testing.T) {
	o := &routeOracle{
		plan:      fixed(`["Search products"]`),
		selection: fixed(`{"tool": "search_products", "parameters": {"category": "Speakers"}}`),
		analysis:  fixed(`{"sufficient": true, "reasoning": "done", "next_action": "synthesize"}`),
		synthesis: fixed("   "),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), "Find speakers")
	require.NoError(t, err)

	assert.NotEmpty(t, result.FinalAnswer)
	assert.Contains(t, result.FinalAnswer, tools.ToolSearchProducts)
}

func TestRunRejectsEmptyGoal(t *testing.T) {
	o := &routeOracle{plan: fixed("[]")}
	_, err := newTestEngine(t, o, 10).Run(context.Background(), "   ")
	require.Error(t, err)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	o := oracleFunc(func(ctx context.Context, msgs []*schema.Message) (string, error) {
		called = true
		return "[]", nil
	})

	_, err := newTestEngine(t, o, 10).Run(ctx, "Find speakers")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "oracle must not be consulted after cancellation")
}

func TestRunIsDeterministicForSameScript(t *testing.T) {
	script := func() *routeOracle {
		return &routeOracle{
			plan:      fixed(`["Search for printers", "Rank them"]`),
			selection: fixed(`{"tool": "search_products", "parameters": {"category": "Printers"}}`),
			analysis: func(call int) (string, error) {
				if call == 1 {
					return `{"sufficient": false, "reasoning": "one step left", "next_action": "continue"}`, nil
				}
				return `{"sufficient": true, "reasoning": "done", "next_action": "synthesize"}`, nil
			},
			synthesis: fixed("Printer overview."),
		}
	}

	first, err := newTestEngine(t, script(), 10).Run(context.Background(), "Compare printers")
	require.NoError(t, err)
	second, err := newTestEngine(t, script(), 10).Run(context.Background(), "Compare printers")
	require.NoError(t, err)

	assert.Equal(t, first.FinalAnswer, second.FinalAnswer)
	assert.Equal(t, first.Plan, second.Plan)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.History, second.History)
	assert.Equal(t, errorKinds(first.Errors), errorKinds(second.Errors))
}

func TestRunSubsetPropagationFromLastSearch(t *testing.T) {
	var statsParams map[string]any
	o := &routeOracle{
		plan: fixed(`["Search top speakers", "Compute their price stats"]`),
		selection: func(call int) (string, error) {
			if call == 1 {
				return `{"tool": "search_products", "parameters": {"category": "Speakers", "limit": 2}}`, nil
			}
			// no subset params: the engine should carry the searched names over
			return `{"tool": "calculate_statistics", "parameters": {"operation": "price_analysis"}}`, nil
		},
		analysis: func(call int) (string, error) {
			if call == 1 {
				return `{"sufficient": false, "reasoning": "stats pending", "next_action": "continue"}`, nil
			}
			return `{"sufficient": true, "reasoning": "done", "next_action": "synthesize"}`, nil
		},
		synthesis: fixed("Price stats for the found speakers."),
	}

	result, err := newTestEngine(t, o, 10).Run(context.Background(), "Price stats for speakers")
	require.NoError(t, err)

	require.Len(t, result.History, 2)
	statsParams = result.History[1].Params
	require.NotNil(t, statsParams["product_names"])
	names, ok := statsParams["product_names"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, names)
}

func TestRunTransitionHookObservesEveryState(t *testing.T) {
	var states []State
	hook := func(state State, snap model.Snapshot) {
		states = append(states, state)
	}

	o := &routeOracle{
		plan:      fixed(`["Search products"]`),
		selection: fixed(`{"tool": "search_products", "parameters": {"category": "Speakers"}}`),
		analysis:  fixed(`{"sufficient": true, "reasoning": "done", "next_action": "synthesize"}`),
		synthesis: fixed("Done."),
	}

	_, err := newTestEngine(t, o, 10, WithTransitionHook(hook)).Run(context.Background(), "Find speakers")
	require.NoError(t, err)

	assert.Equal(t, []State{
		StateStart, StatePlanning, StateSelecting, StateExecuting,
		StateAnalyzing, StateSynthesizing, StateEnd,
	}, states)
}
