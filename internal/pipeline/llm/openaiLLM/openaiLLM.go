package openaiLLM

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	oai       openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(ctx context.Context, settings *config.Settings) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if settings.OpenAIKey == "" {
			logger.Error("OpenAI client needs an API key")
			return
		}
		openaiClient = &llmClient{
			oai:       openai.NewClient(option.WithAPIKey(settings.OpenAIKey)),
			modelName: settings.ModelName,
		}
		logger.Debug("OpenAI " + settings.ModelName + " client created")
		logger.Info("OpenAI client created")
	})

	if openaiClient == nil {
		return nil
	}
	return &llmClient{oai: openaiClient.oai, modelName: openaiClient.modelName}
}

func (c *llmClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, false)
}

func (c *llmClient) GenerateJSON(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, true)
}

func (c *llmClient) complete(ctx context.Context, systemPrompt string, userPrompt string, jsonMode bool) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(float64(config.ModelTemperature)),
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	result, err := c.oai.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Error("Error generating completion from OpenAI", "error", err)
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
