package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var collectionName = config.EmbeddingDBName

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQdrantClient(ctx context.Context, settings *config.Settings) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(settings)
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient(settings *config.Settings) *qdrant.Client {

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     settings.QdrantHost,
		Port:     settings.QdrantPort,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, collectionName)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", collectionName, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) Query(ctx context.Context, vectorFloat []float32, topK int) ([]esg.RetrievedChunk, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, &esg.IndexError{Op: "query", Err: err}
	}

	hits := make([]esg.RetrievedChunk, 0, len(result))
	for _, hit := range result {
		crawledAt := time.Unix(hit.Payload["crawled_at"].GetIntegerValue(), 0).UTC()
		hits = append(hits, esg.RetrievedChunk{
			PageChunk: esg.PageChunk{
				DocumentURL: hit.Payload["url"].GetStringValue(),
				ChunkNumber: int(hit.Payload["chunk_number"].GetIntegerValue()),
				Text:        hit.Payload["text"].GetStringValue(),
				Title:       hit.Payload["title"].GetStringValue(),
				Summary:     hit.Payload["summary"].GetStringValue(),
				CrawledAt:   crawledAt,
			},
			Score: hit.Score,
		})
	}

	loggr.Debug("Query hits", "count", len(hits))
	return hits, nil
}

func (db *ClientHolder) EnsureCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, chunks []esg.PageChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			// Deterministic ID per url and chunk number so a re-crawl
			// overwrites instead of duplicating
			Id: qdrant.NewID(pointID(chunk.DocumentURL, chunk.ChunkNumber)),

			Vectors: qdrant.NewVectors(vectors[i]...),

			Payload: qdrant.NewValueMap(map[string]any{
				"url":          chunk.DocumentURL,
				"url_path":     urlPath(chunk.DocumentURL),
				"source":       urlHost(chunk.DocumentURL),
				"text":         chunk.Text,
				"title":        chunk.Title,
				"summary":      chunk.Summary,
				"chunk_number": chunk.ChunkNumber,
				"chunk_size":   len(chunk.Text),
				"crawled_at":   chunk.CrawledAt.Unix(),
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return &esg.IndexError{Op: "upsert", Err: err}
	}

	return nil
}

func (db *ClientHolder) CountPoints(ctx context.Context, collectionName string) (uint64, error) {
	count, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
	})
	if err != nil {
		return 0, &esg.IndexError{Op: "count", Err: err}
	}
	return count, nil
}

func (db *ClientHolder) Reset(ctx context.Context, collectionName string) error {
	err := db.QObj.DeleteCollection(ctx, collectionName)
	if err != nil {
		return &esg.IndexError{Op: "reset", Err: err}
	}
	return createCollection(ctx, db.QObj, collectionName)
}

// pointID derives a stable UUID from the url and chunk number.
func pointID(documentURL string, chunkNumber int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s_%d", documentURL, chunkNumber))).String()
}

func urlHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {

		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
