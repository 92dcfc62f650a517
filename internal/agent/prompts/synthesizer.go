package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/synthesizer_prompt.txt
var synthesizerSystemPrompt string

// RenderSynthesizerSystem renders the final-answer system prompt.
func RenderSynthesizerSystem(ctx context.Context) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(synthesizerSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("synthesizer prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("synthesizer prompt render: empty result")
	}
	return msgs[0].Content, nil
}
