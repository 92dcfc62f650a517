package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
	logx "github.com/decision-agent-poc-v1/agent/pkg/logger"
)

// ChatModelOracle adapts an Eino chat model into the Completer contract.
// It is process-wide and safe to share read-only across runs; the only
// mutable field (accumulated cost) is guarded by a mutex.
type ChatModelOracle struct {
	cm        einomodel.BaseChatModel
	modelName string
	timeout   time.Duration

	mu           sync.Mutex
	totalCostUSD float64
}

// GeminiConfig holds everything needed to build the production oracle.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   model.OracleModelConfig
}

// NewGemini builds a Gemini-backed oracle with retries layered on top.
func NewGemini(ctx context.Context, cfg GeminiConfig) (Completer, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating oracle chat model")
		return nil, fmt.Errorf("error creating oracle chat model: %w", err)
	}

	timeout, err := time.ParseDuration(cfg.Model.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle timeout %q: %w", cfg.Model.Timeout, err)
	}

	return WithRetry(NewChatModelOracle(cm, cfg.Model.Model, timeout), cfg.Model.MaxRetries), nil
}

// NewChatModelOracle wraps an already-built chat model. Exposed so tests
// and alternative providers can inject their own model.
func NewChatModelOracle(cm einomodel.BaseChatModel, modelName string, timeout time.Duration) *ChatModelOracle {
	return &ChatModelOracle{cm: cm, modelName: modelName, timeout: timeout}
}

// Complete performs one blocking oracle call with a bounded timeout.
// Provider failures come back as TransportError so the retry layer and the
// engine's per-site fallbacks can classify them.
func (o *ChatModelOracle) Complete(ctx context.Context, msgs []*schema.Message) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	out, err := o.cm.Generate(ctx, msgs)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if out == nil {
		return "", &TransportError{Err: fmt.Errorf("nil completion from provider")}
	}

	o.recordUsage(out)
	return out.Content, nil
}

// TotalCostUSD returns the accumulated LLM spend across all calls.
func (o *ChatModelOracle) TotalCostUSD() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.totalCostUSD
}

func (o *ChatModelOracle) recordUsage(out *schema.Message) {
	if !model.CostEnabled() || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	pricing := model.ResolvePricing(o.modelName)
	inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)

	o.mu.Lock()
	o.totalCostUSD += totalC
	running := o.totalCostUSD
	o.mu.Unlock()

	logx.Debug().
		Str("model", o.modelName).
		Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
		Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
		Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Float64("running_total_usd", running).
		Msg("LLM usage")
}
