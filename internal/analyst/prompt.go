package analyst

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/system_prompt.txt
var systemPromptTemplate string

// RenderSystemPrompt embeds the dataset context JSON into the fixed analyst
// instruction template. Pure templating; no numbers are computed here.
func RenderSystemPrompt(ctx context.Context, dc Context) (string, error) {
	contextJSON, err := json.MarshalIndent(dc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dataset context: %w", err)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(systemPromptTemplate),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"DatasetContext": string(contextJSON),
	})
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
