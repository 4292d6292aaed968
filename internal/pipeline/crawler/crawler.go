package crawler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/customHttpClient"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
	colly "github.com/gocolly/colly/v2"
)

// retryCountKey is the request context key for the retry count in OnError.
const retryCountKey = "retry_count"

type Fetcher interface {
	// FetchPages visits every url and returns the pages that produced text.
	// Failed pages become failure records, they never abort the batch.
	FetchPages(ctx context.Context, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure)
	LoadSitemap(ctx context.Context, sitemapURL string) ([]string, error)
}

type collyFetcher struct {
	logger *logger_i.Logger
}

func NewFetcher() Fetcher {
	return &collyFetcher{
		logger: logger_i.NewLogger("Crawler"),
	}
}

func (f *collyFetcher) FetchPages(ctx context.Context, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure) {
	log := f.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	targets := dedupe(urls)
	if maxPages <= 0 || maxPages > config.CrawlMaxPages {
		maxPages = config.CrawlMaxPages
	}
	if len(targets) > maxPages {
		targets = targets[:maxPages]
	}

	var mu sync.Mutex
	var docs []esg.CrawledDocument
	var failures []esg.FetchFailure

	collector := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.Async(true),
		colly.MaxDepth(1),
		colly.UserAgent(config.CrawlUserAgent),
		colly.IgnoreRobotsTxt(),
	)
	collector.SetRequestTimeout(config.CrawlRequestTimeout)
	collector.WithTransport(customHttpClient.Transport())

	err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       config.CrawlPoliteDelay,
		Parallelism: config.CrawlParallelism,
	})
	if err != nil {
		log.Error("Could not set crawl limits", "error", err)
	}

	collector.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
		default:
			log.Debug("Visiting", "url", r.URL.String())
		}
	})

	// Abort anything that is not a page before downloading the body
	collector.OnResponseHeaders(func(r *colly.Response) {
		contentType := strings.ToLower(strings.TrimSpace(r.Headers.Get("Content-Type")))
		isHTML := strings.Contains(contentType, "text/html") ||
			strings.Contains(contentType, "application/xhtml+xml")
		if contentType != "" && !isHTML {
			r.Request.Abort()
		}
	})

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		pageURL := e.Request.URL.String()
		text := FromDOM(e.DOM)

		mu.Lock()
		defer mu.Unlock()
		if text == "" {
			failures = append(failures, esg.FetchFailure{URL: pageURL, Error: "page has no text content"})
			return
		}
		docs = append(docs, esg.CrawledDocument{
			URL:       pageURL,
			RawText:   text,
			FetchedAt: time.Now().UTC(),
		})
	})

	collector.OnError(func(r *colly.Response, visitErr error) {
		pageURL := r.Request.URL.String()

		if errors.Is(visitErr, colly.ErrAbortedAfterHeaders) {
			log.Debug("Skipping non-page content", "url", pageURL)
			mu.Lock()
			failures = append(failures, esg.FetchFailure{URL: pageURL, Error: "non-text content, skipped"})
			mu.Unlock()
			return
		}
		var alreadyVisited *colly.AlreadyVisitedError
		if errors.As(visitErr, &alreadyVisited) {
			return
		}

		if isTransient(r, visitErr) {
			count := 0
			if v := r.Request.Ctx.GetAny(retryCountKey); v != nil {
				if n, ok := v.(int); ok {
					count = n
				}
			}
			if count < config.CrawlMaxRetries {
				r.Request.Ctx.Put(retryCountKey, count+1)
				if retryErr := r.Request.Retry(); retryErr == nil {
					return
				}
			}
		}

		log.Error("Crawl error", "url", pageURL, "error", visitErr)
		mu.Lock()
		failures = append(failures, esg.FetchFailure{URL: pageURL, Error: visitErr.Error()})
		mu.Unlock()
	})

	for _, target := range targets {
		if visitErr := collector.Visit(target); visitErr != nil {
			var alreadyVisited *colly.AlreadyVisitedError
			if errors.As(visitErr, &alreadyVisited) {
				continue
			}
			mu.Lock()
			failures = append(failures, esg.FetchFailure{URL: target, Error: visitErr.Error()})
			mu.Unlock()
		}
	}
	collector.Wait()

	log.Info("Crawl finished", "requested", len(targets), "crawled", len(docs), "failed", len(failures))
	return docs, failures
}

func isTransient(r *colly.Response, visitErr error) bool {
	msg := strings.ToLower(visitErr.Error())
	transientPatterns := []string{
		"connection refused", "connection reset", "temporary failure",
		"eof", "broken pipe", "no such host", "i/o timeout", "connection timed out",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	if r != nil && r.StatusCode >= 500 && r.StatusCode < 600 {
		return true
	}
	return false
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
