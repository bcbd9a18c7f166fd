package analyst

import (
	"context"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModel is the completion surface the analyst needs: one synchronous
// generation over a message list. Both the OpenAI-compatible client and the
// eino Gemini chat model satisfy it.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}
