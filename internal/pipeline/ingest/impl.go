package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB"
)

const annotateSystemPrompt = `You are an AI that extracts titles and summaries from documentation chunks.
Return a JSON object with 'title' and 'summary' keys.
For the title: if this seems like the start of a document, extract its title. If it is a middle chunk, derive a descriptive title.
For the summary: create a concise summary of the main points in this chunk.
Keep both title and summary concise but informative.`

const annotationPreviewLimit = 1000

type textSpan struct {
	Text   string
	Offset int
}

type annotation struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

//splitter

// chunkText cuts text into windows of at most chunkSize bytes. A window
// prefers to end at a code fence, then a paragraph break, then a sentence
// end, as long as the break sits past MinChunkFraction of the window.
func chunkText(text string, chunkSize int) []textSpan {
	var chunks []textSpan
	start := 0
	textLength := len(text)
	minBreak := int(float64(chunkSize) * config.MinChunkFraction)

	for start < textLength {
		end := start + chunkSize
		if end >= textLength {
			appendSpan(&chunks, text[start:], start)
			break
		}

		window := text[start:end]
		if idx := strings.LastIndex(window, "```"); idx != -1 && idx > minBreak {
			end = start + idx
		} else if idx := strings.LastIndex(window, "\n\n"); idx != -1 && idx > minBreak {
			end = start + idx
		} else if idx := strings.LastIndex(window, ". "); idx != -1 && idx > minBreak {
			end = start + idx + 1
		} else {
			// Hard cut, back off to a rune boundary
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == start {
				end = start + chunkSize
			}
		}

		appendSpan(&chunks, text[start:end], start)
		start = end
	}
	return chunks
}

func appendSpan(chunks *[]textSpan, raw string, start int) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}
	leading := len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
	*chunks = append(*chunks, textSpan{Text: trimmed, Offset: start + leading})
}

// annotateChunk asks the model for a title and summary. Annotation is
// enrichment, a failed call leaves placeholders and the chunk still indexes.
func annotateChunk(ctx context.Context, provider llm.Provider, documentURL string, text string) annotation {
	failed := annotation{Title: "Error processing title", Summary: "Error processing summary"}

	preview := text
	if len(preview) > annotationPreviewLimit {
		cut := annotationPreviewLimit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}

	out, err := provider.GenerateJSON(ctx, annotateSystemPrompt, fmt.Sprintf("URL: %s\n\nContent:\n%s", documentURL, preview))
	if err != nil {
		logger.Error("Error annotating chunk", "url", documentURL, "error", err)
		return failed
	}

	var note annotation
	if err = json.Unmarshal([]byte(llm.CleanJSONResponse(out)), &note); err != nil {
		logger.Error("Error parsing chunk annotation", "url", documentURL, "error", err)
		return failed
	}
	if note.Title == "" {
		note.Title = failed.Title
	}
	if note.Summary == "" {
		note.Summary = failed.Summary
	}
	return note
}

func PrepareChunks(ctx context.Context, doc esg.CrawledDocument, provider llm.Provider) []esg.PageChunk {
	spans := chunkText(doc.RawText, config.MaxChunkSize)

	chunks := make([]esg.PageChunk, 0, len(spans))
	for i, span := range spans {
		note := annotateChunk(ctx, provider, doc.URL, span.Text)
		chunks = append(chunks, esg.PageChunk{
			DocumentURL: doc.URL,
			ChunkNumber: i,
			Text:        span.Text,
			Title:       note.Title,
			Summary:     note.Summary,
			Offset:      span.Offset,
			CrawledAt:   doc.FetchedAt,
		})
	}
	return chunks
}

func BatchIngest(ctx context.Context, chunks []esg.PageChunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := config.IngestBatchSize
	isHugeDataSet := false

	if len(chunks) > 1000000 { //we only want to do this for a huge document
		isHugeDataSet = true
		log.Debug("Is a huge dataset")
	}

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Text
		}

		log.Debug("Starting embedding call", "current batch length", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return &esg.IndexError{Op: "embed batch", Err: err}
		}

		err = vectorDatabase.UpsertBatch(ctx, config.EmbeddingDBName, currentBatch, vectors)
		if err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}

	return nil
}
