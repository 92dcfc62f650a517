package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/selector_prompt.txt
var selectorSystemPrompt string

// RenderSelectorSystem renders the tool-selection system prompt with the
// registry's tool catalog.
func RenderSelectorSystem(ctx context.Context, toolCatalog string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(selectorSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"ToolCatalog": toolCatalog,
	})
	if err != nil {
		return "", fmt.Errorf("selector prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("selector prompt render: empty result")
	}
	return msgs[0].Content, nil
}
