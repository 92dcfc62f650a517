package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
)

//go:embed template/planner_prompt.txt
var plannerSystemPrompt string

// RenderPlannerSystem renders the planner system prompt via the Eino prompt
// component, injecting the registry's tool catalog and step bounds.
func RenderPlannerSystem(ctx context.Context, toolCatalog string, cfg model.PlannerPromptConfig) (string, error) {
	minSteps, maxSteps := cfg.MinSteps, cfg.MaxSteps
	if minSteps <= 0 {
		minSteps = 2
	}
	if maxSteps < minSteps {
		maxSteps = minSteps + 3
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(plannerSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"ToolCatalog": toolCatalog,
		"MinSteps":    minSteps,
		"MaxSteps":    maxSteps,
	})
	if err != nil {
		return "", fmt.Errorf("planner prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("planner prompt render: empty result")
	}
	return msgs[0].Content, nil
}
