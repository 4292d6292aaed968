package crawler

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/customHttpClient"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// LoadSitemap fetches a sitemap and returns every <loc> entry in it.
func (f *collyFetcher) LoadSitemap(ctx context.Context, sitemapURL string) ([]string, error) {
	log := f.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, &esg.FetchError{URL: sitemapURL, Err: err}
	}
	req.Header.Set("User-Agent", config.CrawlUserAgent)

	res, err := customHttpClient.Client(config.CrawlRequestTimeout).Do(req)
	if err != nil {
		log.Error("Sitemap fetch failed", "url", sitemapURL, "error", err)
		return nil, &esg.FetchError{URL: sitemapURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &esg.FetchError{URL: sitemapURL, Err: fmt.Errorf("status %d", res.StatusCode)}
	}

	locs, err := parseSitemapLocs(res.Body)
	if err != nil {
		return nil, &esg.FetchError{URL: sitemapURL, Err: err}
	}

	log.Info("Sitemap loaded", "url", sitemapURL, "locations", len(locs))
	return locs, nil
}

func parseSitemapLocs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var locs []string
	var inLoc bool
	var current strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "loc" && (t.Name.Space == sitemapNamespace || t.Name.Space == "") {
				inLoc = true
				current.Reset()
			}
		case xml.CharData:
			if inLoc {
				current.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "loc" && inLoc {
				if loc := strings.TrimSpace(current.String()); loc != "" {
					locs = append(locs, loc)
				}
				inLoc = false
			}
		}
	}
	return locs, nil
}
