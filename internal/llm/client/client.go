package client

import (
	"context"
	"errors"
	"log"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Completion defaults shared by all providers.
const (
	defaultMaxTokens   = 800
	defaultTemperature = float32(0.7)
)

const fallbackUserMessage = "Please continue the discussion."

// LLMClient wraps one provider-specific chat model behind a single
// completion call.
type LLMClient struct {
	chatModel  model.BaseChatModel
	providerID string
	modelName  string
}

type OpenAIModelOptions struct {
	Model string
}

type ClaudeModelOptions struct {
	Model    string
	Thinking bool
}

type GeminiModelOptions struct {
	Model    string
	Thinking bool
}

func NewOpenAIClient(ctx context.Context, key string, opts OpenAIModelOptions) (*LLMClient, error) {
	maxTokens := defaultMaxTokens
	temperature := defaultTemperature
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      key,
		Model:       opts.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		log.Printf("Error creating OpenAI client: %v", err)
		return nil, err
	}
	return &LLMClient{chatModel: chatModel, providerID: "openai", modelName: opts.Model}, nil
}

func NewClaudeClient(ctx context.Context, key string, opts ClaudeModelOptions) (*LLMClient, error) {
	temperature := defaultTemperature
	chatModel, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:      key,
		Model:       opts.Model,
		MaxTokens:   defaultMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		log.Printf("Error creating Claude client: %v", err)
		return nil, err
	}
	return &LLMClient{chatModel: chatModel, providerID: "anthropic", modelName: opts.Model}, nil
}

func NewGeminiClient(ctx context.Context, key string, opts GeminiModelOptions) (*LLMClient, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Error creating Gemini API client: %v", err)
		return nil, err
	}
	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: genaiClient,
		Model:  opts.Model,
	})
	if err != nil {
		log.Printf("Error creating Gemini chat model: %v", err)
		return nil, err
	}
	return &LLMClient{chatModel: chatModel, providerID: "gemini", modelName: opts.Model}, nil
}

// Provider returns the provider id this client was built for.
func (c *LLMClient) Provider() string { return c.providerID }

// ModelName returns the provider-facing model name.
func (c *LLMClient) ModelName() string { return c.modelName }

// Complete sends a system prompt plus conversation history to the model and
// returns the assistant text. Failures come back as *UpstreamError; the
// client never retries.
func (c *LLMClient) Complete(ctx context.Context, systemPrompt string, history []*schema.Message) (string, error) {
	normalized, _ := normalizeConversationHistory(history, fallbackUserMessage)

	messages := make([]*schema.Message, 0, len(normalized)+1)
	if systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, normalized...)

	out, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", Classify(err)
	}
	if out == nil || out.Content == "" {
		return "", &UpstreamError{Kind: FailureUnknown, Err: errors.New("model returned no content")}
	}
	return out.Content, nil
}

// normalizeConversationHistory ensures the first non-system message is a
// user message, which every provider requires. Leading assistant messages
// are dropped; if no user message exists at all, a fallback one is inserted.
// Returns the (possibly shared) slice and whether anything changed.
func normalizeConversationHistory(history []*schema.Message, fallback string) ([]*schema.Message, bool) {
	firstContent := 0
	for firstContent < len(history) && history[firstContent] != nil && history[firstContent].Role == schema.System {
		firstContent++
	}
	if firstContent < len(history) && history[firstContent].Role == schema.User {
		return history, false
	}

	if fallback == "" {
		fallback = fallbackUserMessage
	}

	// Drop leading assistant messages after any system prefix.
	trimmed := make([]*schema.Message, 0, len(history))
	trimmed = append(trimmed, history[:firstContent]...)
	rest := history[firstContent:]
	for len(rest) > 0 && rest[0] != nil && rest[0].Role == schema.Assistant {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0].Role != schema.User {
		trimmed = append(trimmed, schema.UserMessage(fallback))
	}
	trimmed = append(trimmed, rest...)
	return trimmed, true
}
