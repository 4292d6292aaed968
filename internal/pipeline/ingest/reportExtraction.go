package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

func getReportKind(reportPath string) esg.ReportKind {
	ext := strings.ToLower(filepath.Ext(reportPath))
	switch ext {
	case ".pdf":
		return esg.PDF
	case ".docx", ".rtf", ".odt":
		return esg.DOCX
	case ".txt":
		return esg.TXT
	case ".md", ".markdown":
		return esg.MD
	default:
		return esg.ERR
	}
}

func extractReport(path string, kind esg.ReportKind) (string, error) {
	switch kind {
	case esg.PDF:
		return extractPDF(path)
	case esg.DOCX, esg.TXT:
		return extractWithCat(path)
	case esg.MD:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read markdown: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unsupported report kind: %s", kind)
	}
}

func extractPDF(path string) (string, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file")
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var parts []string
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// A bad page should not sink the whole report
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		parts = append(parts, content)
	}
	if len(parts) == 0 {
		return "", errors.New("no extractable text in pdf")
	}
	return strings.Join(parts, "\n\n"), nil
}

// extractWithCat reads a .docx, .odt, .rtf or plaintext file.
func extractWithCat(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc")
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return text, nil
}

// protectExtract guards against the pdf parser hanging on malformed pages.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout")
		return "", errors.New("timeout")
	}
}
