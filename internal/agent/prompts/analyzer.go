package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/analyzer_prompt.txt
var analyzerSystemPrompt string

// RenderAnalyzerSystem renders the analyzer system prompt.
func RenderAnalyzerSystem(ctx context.Context) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(analyzerSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("analyzer prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("analyzer prompt render: empty result")
	}
	return msgs[0].Content, nil
}
