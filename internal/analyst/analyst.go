package analyst

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/vitalstats/natalityd/internal/dataset"
	"github.com/vitalstats/natalityd/internal/query"
	logx "github.com/vitalstats/natalityd/pkg/logger"
)

// FallbackReply is the fixed answer substituted for any model failure.
// Callers never see a technical error from the analyst path.
const FallbackReply = "The AI analyst is currently unavailable."

// Analyst answers natural-language questions about the currently filtered
// dataset through a chat model.
type Analyst struct {
	model ChatModel
}

// New creates an analyst over the given chat model.
func New(model ChatModel) *Analyst {
	return &Analyst{model: model}
}

// Ask builds the dataset context from the filtered view, renders the system
// prompt and asks the model. Any failure (transport, status, malformed
// payload, empty reply) collapses to FallbackReply; the cause is logged
// and counted but never returned.
func (a *Analyst) Ask(ctx context.Context, v dataset.View, sel query.Selection, question string) string {
	askTotal.Inc()

	system, err := RenderSystemPrompt(ctx, BuildContext(v, sel))
	if err != nil {
		fallbackTotal.Inc()
		logx.Warn().Err(err).Msg("system prompt render failed, using fallback reply")
		return FallbackReply
	}

	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(question),
	}

	out, err := a.model.Generate(ctx, messages)
	if err != nil || out == nil || strings.TrimSpace(out.Content) == "" {
		fallbackTotal.Inc()
		logx.Warn().Err(err).Msg("analyst model call failed, using fallback reply")
		return FallbackReply
	}
	return out.Content
}
