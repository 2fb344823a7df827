package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/wordbridge/core/internal/config"
	"go.uber.org/zap"
)

// modelEngine implements Engine on top of a configured LLM provider.
type modelEngine struct {
	provider config.EngineProvider
	log      *zap.Logger
}

// NewEngine selects the first enabled provider from the config.
func NewEngine(cfg config.EngineConfig, log *zap.Logger) (Engine, error) {
	for _, p := range cfg.Providers {
		if p.Enabled {
			return &modelEngine{provider: p, log: log}, nil
		}
	}
	return nil, errors.New("no enabled engine provider configured")
}

// enginePayload is the JSON shape the prompts instruct the model to emit.
type enginePayload struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error"`
	Translation    string   `json:"translation"`
	Definition     string   `json:"definition"`
	Examples       []string `json:"examples"`
	SynonymsSource []string `json:"synonyms_src"`
	SynonymsTarget []string `json:"synonyms_target"`
}

func (e *modelEngine) Translate(ctx context.Context, word, paragraph, srcLang, targetLang string) (*EngineResult, error) {
	var prompt string
	if len(strings.Fields(word)) > 1 {
		prompt = phrasePrompt(word, paragraph, srcLang, targetLang)
	} else {
		prompt = wordPrompt(word, paragraph, srcLang, targetLang)
	}

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload enginePayload
	if err := unmarshalModelJSON(raw, &payload); err != nil {
		e.log.Warn("engine returned unparsable output", zap.Error(err))
		return nil, &EngineError{Kind: KindGeneric, Message: "invalid response from translation engine"}
	}
	if !payload.Success || strings.TrimSpace(payload.Translation) == "" {
		msg := strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = "can't find a proper translation"
		}
		return nil, &EngineError{Kind: KindGeneric, Message: msg}
	}

	return &EngineResult{
		Translation:    payload.Translation,
		Definition:     payload.Definition,
		Examples:       payload.Examples,
		SynonymsSource: payload.SynonymsSource,
		SynonymsTarget: payload.SynonymsTarget,
	}, nil
}

func (e *modelEngine) complete(ctx context.Context, prompt string) (string, error) {
	if isAnthropicProviderType(e.provider.Type) {
		return e.completeAnthropic(ctx, prompt)
	}
	return e.completeOpenAI(ctx, prompt)
}

// completeOpenAI covers both OpenAI and OpenAI-compatible endpoints
// (Gemini exposes one).
func (e *modelEngine) completeOpenAI(ctx context.Context, prompt string) (string, error) {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(e.provider.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(e.provider.Endpoint); endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	model := strings.TrimSpace(e.provider.DefaultModel)
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openaiclient.NewClient(opts...)
	resp, err := client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(model),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &EngineError{Kind: KindGeneric, Message: "empty response from translation engine"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (e *modelEngine) completeAnthropic(ctx context.Context, prompt string) (string, error) {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(e.provider.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(e.provider.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	model := strings.TrimSpace(e.provider.DefaultModel)
	if model == "" {
		model = "claude-haiku-4-5-20251001"
	}

	client := anthropicclient.NewClient(opts...)
	msg, err := client.Messages.New(ctx, anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(model),
		MaxTokens: 1024,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	var full strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropicclient.TextBlock); ok {
			full.WriteString(tb.Text)
		}
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", &EngineError{Kind: KindGeneric, Message: "empty response from translation engine"}
	}
	return full.String(), nil
}

// classifyOpenAIError tags the failure by upstream status code instead of
// matching error strings.
func classifyOpenAIError(err error) *EngineError {
	var apiErr *openaiclient.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &EngineError{Kind: KindQuota, Message: err.Error()}
	}
	return &EngineError{Kind: KindGeneric, Message: err.Error()}
}

func classifyAnthropicError(err error) *EngineError {
	var apiErr *anthropicclient.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &EngineError{Kind: KindQuota, Message: err.Error()}
	}
	return &EngineError{Kind: KindGeneric, Message: err.Error()}
}

func isAnthropicProviderType(raw string) bool {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	return t == "anthropic"
}

// unmarshalModelJSON tolerates markdown fences and prose around the JSON
// object the model was asked for.
func unmarshalModelJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}

	return errors.New("invalid JSON in engine output")
}
