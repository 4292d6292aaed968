package openaiEmbedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension = int64(config.EmbeddingOutputDimensionality)

type client struct {
	oai   openai.Client
	model string
}

func GetOpenAIEmbeddingClient(ctx context.Context, settings *config.Settings) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if settings.OpenAIKey == "" {
			logger.Error("OpenAI embedding client needs an API key")
			return
		}
		embeddingClient = &client{
			oai:   openai.NewClient(option.WithAPIKey(settings.OpenAIKey)),
			model: settings.EmbeddingModel,
		}
		logger.Debug("OpenAI Embedding model name: " + settings.EmbeddingModel)
		logger.Info("OpenAI Embedding client created")
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{oai: embeddingClient.oai, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error) {
	// The embeddings endpoint takes the whole batch in one request, the
	// huge-dataset flag changes nothing here
	_ = isHugeDataSet
	return c.embed(ctx, chunks)
}

func (c *client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.oai.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(dimension),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err)
		return nil, err
	}
	if len(res.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(res.Data), len(texts))
	}

	vectors := make([][]float32, len(res.Data))
	for _, d := range res.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
