package analyst

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	logx "github.com/vitalstats/natalityd/pkg/logger"
)

// GeminiConfig configures the Gemini-backed analyst model.
type GeminiConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewGeminiModel creates an eino Gemini chat model. The returned model
// satisfies ChatModel and is selected via ANALYST_BACKEND=gemini.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*gemini.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("creating Gemini client failed")
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("creating Gemini chat model failed")
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}

	return model, nil
}
