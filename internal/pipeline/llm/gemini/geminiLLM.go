package gemini

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, settings *config.Settings) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, settings)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, settings *config.Settings) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: settings.GeminiKey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: settings.ModelName}
		logger.Debug("Gemini " + settings.ModelName + " client created")
		logger.Info("Gemini client created")
		go closeClient(ctx, geminiClient)
	}

}

func (c *llmClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, "")
}

func (c *llmClient) GenerateJSON(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, "application/json")
}

func (c *llmClient) complete(ctx context.Context, systemPrompt string, userPrompt string, mimeType string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	temperature := config.ModelTemperature
	contentConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		},
	}
	if mimeType != "" {
		contentConfig.ResponseMIMEType = mimeType
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		contentConfig,
	)
	if err != nil {
		log.Error("Error generating completion from Gemini", "error", err)
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini returned no result")
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
