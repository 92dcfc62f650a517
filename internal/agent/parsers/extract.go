// Package parsers turns free-form oracle output into the structured values
// the engine needs. Every function here is a pure extraction: it either
// succeeds or returns an error, and the calling state applies its own
// deterministic fallback. Extraction failure is never allowed to escape as
// an unhandled error.
package parsers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 128 * 1024 // 128KB
	maxPlanSteps  = 10
	maxScanStarts = 50 // candidate JSON object starts to try
)

// ToolSelection is the SELECTING state's structured verdict.
type ToolSelection struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
}

// AnalyzerDecision is the ANALYZING state's structured verdict.
type AnalyzerDecision struct {
	Sufficient bool   `json:"sufficient"`
	Reasoning  string `json:"reasoning"`
	NextAction string `json:"next_action"`
}

// NeedsMoreInfo folds the decision's two signals into the loop condition.
func (d AnalyzerDecision) NeedsMoreInfo() bool {
	return !(d.Sufficient || strings.EqualFold(strings.TrimSpace(d.NextAction), "synthesize"))
}

// ParsePlan extracts an ordered step list from planner output. It prefers a
// JSON string array anywhere in the content and falls back to non-empty
// lines. An empty result is an error; the caller substitutes the
// single-step fallback plan.
func ParsePlan(content string) ([]string, error) {
	content = clip(content)

	if start := strings.Index(content, "["); start >= 0 {
		if end := strings.LastIndex(content, "]"); end > start {
			if steps, ok := decodeStringArray(content[start : end+1]); ok && len(steps) > 0 {
				return capSteps(steps), nil
			}
		}
	}

	// Line fallback: every non-empty line is a step.
	var steps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, line)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no plan steps found in planner output")
	}
	return capSteps(steps), nil
}

// ParseToolSelection extracts {"tool": ..., "parameters": {...}} from
// selector output. When the object decodes but names no tool, the known
// tool list is scanned as a substring fallback before giving up.
func ParseToolSelection(content string, knownTools []string) (*ToolSelection, error) {
	content = clip(content)

	var sel ToolSelection
	if err := decodeFirstObject(content, &sel); err != nil {
		return nil, fmt.Errorf("no tool selection object found: %w", err)
	}

	sel.Tool = strings.TrimSpace(sel.Tool)
	if sel.Tool == "" {
		lowered := strings.ToLower(content)
		for _, candidate := range knownTools {
			if strings.Contains(lowered, candidate) {
				sel.Tool = candidate
				break
			}
		}
	}
	if sel.Tool == "" {
		return nil, fmt.Errorf("tool selection missing tool name")
	}
	if sel.Parameters == nil {
		sel.Parameters = map[string]any{}
	}
	return &sel, nil
}

// ParseAnalyzerDecision extracts the analyzer's sufficiency verdict.
func ParseAnalyzerDecision(content string) (*AnalyzerDecision, error) {
	content = clip(content)

	var decision AnalyzerDecision
	if err := decodeFirstObject(content, &decision); err != nil {
		return nil, fmt.Errorf("no analyzer decision object found: %w", err)
	}
	return &decision, nil
}

// --- helpers ---

func clip(content string) string {
	if len(content) > maxContentLen {
		return content[:maxContentLen]
	}
	return content
}

func capSteps(steps []string) []string {
	if len(steps) > maxPlanSteps {
		return steps[:maxPlanSteps]
	}
	return steps
}

func decodeStringArray(fragment string) ([]string, bool) {
	var steps []string
	if err := json.Unmarshal([]byte(fragment), &steps); err == nil {
		return trimAll(steps), true
	}
	// tolerate mixed arrays by stringifying elements
	var raw []any
	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		return nil, false
	}
	steps = make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			steps = append(steps, s)
		} else {
			steps = append(steps, fmt.Sprint(item))
		}
	}
	return trimAll(steps), true
}

func trimAll(steps []string) []string {
	out := steps[:0]
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// decodeFirstObject decodes the first complete JSON object found in content
// into v, skipping prose around it (models love code fences and preambles).
func decodeFirstObject(content string, v any) error {
	rest := content
	for tries := 0; tries < maxScanStarts; tries++ {
		idx := strings.Index(rest, "{")
		if idx < 0 {
			break
		}
		dec := json.NewDecoder(strings.NewReader(rest[idx:]))
		if err := dec.Decode(v); err == nil {
			return nil
		}
		rest = rest[idx+1:]
	}
	return fmt.Errorf("no decodable JSON object")
}
