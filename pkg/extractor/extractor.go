// Package extractor turns raw page markup into a PageDigest: title, meta
// description, and a bounded plain-text preview. It performs no network or
// file access.
package extractor

import (
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
	"golang.org/x/net/html"

	"github.com/mpetrov/digest/models"
)

// DefaultPreviewChars bounds the text preview kept on a digest.
const DefaultPreviewChars = 800

type Extractor struct {
	previewChars int
}

func New(previewChars int) *Extractor {
	if previewChars <= 0 {
		previewChars = DefaultPreviewChars
	}
	return &Extractor{previewChars: previewChars}
}

// Extract builds a PageDigest from raw markup. Malformed markup never fails;
// the worst case is a digest with empty fields. The URL field is left for the
// caller to fill.
func (e *Extractor) Extract(markup string) *models.PageDigest {
	digest := &models.PageDigest{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return digest
	}

	digest.Title = strings.TrimSpace(doc.Find("title").First().Text())

	// og:description substitutes only when the description tag is absent; a
	// present tag with empty content stays empty.
	var desc string
	if meta := doc.Find(`meta[name="description"]`); meta.Length() > 0 {
		desc = meta.First().AttrOr("content", "")
	} else {
		desc = doc.Find(`meta[property="og:description"]`).First().AttrOr("content", "")
	}
	digest.MetaDescription = strings.TrimSpace(desc)

	doc.Find("script,style,noscript").Remove()
	text := visibleText(doc)

	digest.FullText = text
	digest.TextPreview = truncate(text, e.previewChars)
	digest.Language = detectLanguage(digest.TextPreview)

	return digest
}

// ExtractReadable isolates the main article content with go-readability
// before the usual digest treatment. Pages readability cannot handle fall
// back to the whole-document extraction.
func (e *Extractor) ExtractReadable(pageURL, markup string) *models.PageDigest {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return e.Extract(markup)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(markup), parsed)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return e.Extract(markup)
	}

	digest := e.Extract(article.Content)
	if digest.Title == "" {
		digest.Title = strings.TrimSpace(article.Title)
	}
	if digest.MetaDescription == "" {
		digest.MetaDescription = strings.TrimSpace(article.Excerpt)
	}
	return digest
}

// visibleText concatenates all text nodes with single-space separators and
// collapses runs of whitespace.
func visibleText(doc *goquery.Document) string {
	var sb strings.Builder
	for _, n := range doc.Selection.Nodes {
		collectText(n, &sb)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// truncate bounds s to max characters (runes, not bytes).
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// detectLanguage guesses the ISO-639-1 language code of text. The summarizer
// stopword list is English-only, so callers log non-English pages. Detection
// is restricted to a few common languages to keep the model footprint small.
func detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.French,
				lingua.German,
				lingua.Italian,
				lingua.Portuguese,
				lingua.Spanish,
			).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
