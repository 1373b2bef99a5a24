package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAI backs the three generation stages (structure, classify, rewrite)
// with OpenAI's chat completions API. Config is resolved once at
// construction; every Generate call sends a single user message and returns
// the first choice verbatim, leaving JSON parsing to the callers.
type OpenAI struct {
	client      openai.Client
	model       shared.ChatModel
	temperature float64
	maxTokens   int64
}

// NewOpenAI creates the chat-completions client. The API key comes from the
// config or, failing that, the OPENAI_API_KEY environment variable.
func NewOpenAI(config Config) (*OpenAI, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or provide in config)", ErrInvalidConfig)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}

	return &OpenAI{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       shared.ChatModel(config.Model),
		temperature: float64(config.Temperature),
		maxTokens:   int64(config.MaxTokens),
	}, nil
}

// Generate sends one prompt and returns the model's text response.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if o.temperature > 0 {
		params.Temperature = openai.Float(o.temperature)
	}
	if o.maxTokens > 0 {
		params.MaxTokens = openai.Int(o.maxTokens)
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMFailed, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no response generated", ErrLLMFailed)
	}

	return completion.Choices[0].Message.Content, nil
}
