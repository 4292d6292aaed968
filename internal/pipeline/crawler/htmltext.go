package crawler

import (
	stdhtml "html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// FromHTML parses raw HTML and renders it as plain text, markdown style.
func FromHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}
	return FromDOM(doc.Selection), nil
}

// FromDOM renders a parsed document as plain text. Script and style noise is
// dropped, headings keep a # prefix and links keep their target so the model
// can cite sources.
func FromDOM(sel *goquery.Selection) string {
	sel = sel.Clone()

	sel.Find("script, style, noscript, nav, iframe, svg").Remove()

	sel.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := condense(s.Text())
		if text == "" || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		s.ReplaceWithHtml(stdhtml.EscapeString("[" + text + "](" + href + ")"))
	})

	sel.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})

	for level, tag := range headingTags {
		prefix := strings.Repeat("#", level+1)
		sel.Find(tag).Each(func(_ int, s *goquery.Selection) {
			heading := condense(s.Text())
			if heading == "" {
				s.Remove()
				return
			}
			s.SetText("\n\n" + prefix + " " + heading + "\n\n")
		})
	}

	sel.Find("li").Each(func(_ int, s *goquery.Selection) {
		item := condense(s.Text())
		if item == "" {
			s.Remove()
			return
		}
		s.SetText("\n- " + item)
	})

	sel.Find("p").Each(func(_ int, s *goquery.Selection) {
		para := condense(s.Text())
		if para == "" {
			s.Remove()
			return
		}
		s.SetText("\n\n" + para + "\n\n")
	})

	return normalize(sel.Text())
}

// condense collapses runs of whitespace inside a line.
func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = condense(lines[i])
	}
	joined := strings.Join(lines, "\n")
	for strings.Contains(joined, "\n\n\n") {
		joined = strings.ReplaceAll(joined, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(joined)
}
