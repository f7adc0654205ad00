package summarize

import (
	"context"
	"log/slog"
	"time"

	"github.com/mpetrov/digest/models"
	"github.com/mpetrov/digest/pkg/extractor"
	"github.com/mpetrov/digest/pkg/gemini"
	"github.com/mpetrov/digest/pkg/summarizer"
)

// Fetcher retrieves page markup for a URL. It is an interface so tests can
// run the pipeline without a network.
type Fetcher interface {
	GetHTML(url string) (string, error)
}

// ExternalSummarizer is the optional remote summarization collaborator. An
// absent result (false) always triggers the local extractive fallback.
type ExternalSummarizer interface {
	Summarize(ctx context.Context, prompt string) (string, bool)
}

// Pipeline processes URLs one at a time: fetch, extract, summarize, record.
// Execution is strictly sequential; each URL completes before the next
// begins, and a fixed delay follows every URL to bound the request rate.
type Pipeline struct {
	fetcher     Fetcher
	extractor   *extractor.Extractor
	local       *summarizer.Summarizer
	external    ExternalSummarizer // nil when external summarization is disabled
	delay       time.Duration
	readability bool
	logger      *slog.Logger
}

type PipelineOptions struct {
	Fetcher     Fetcher
	Extractor   *extractor.Extractor
	Local       *summarizer.Summarizer
	External    ExternalSummarizer
	Delay       time.Duration
	Readability bool
	Logger      *slog.Logger
}

func NewPipeline(opts PipelineOptions) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:     opts.Fetcher,
		extractor:   opts.Extractor,
		local:       opts.Local,
		external:    opts.External,
		delay:       opts.Delay,
		readability: opts.Readability,
		logger:      logger,
	}
}

// Run produces exactly one SummaryResult per input URL, in input order. A
// URL's failure never aborts the run; it is recorded on that URL's result
// and processing moves on.
func (p *Pipeline) Run(ctx context.Context, urls []string) []models.SummaryResult {
	results := make([]models.SummaryResult, 0, len(urls))

	for i, url := range urls {
		p.logger.Info("Processing URL", "index", i+1, "total", len(urls), "url", url)
		results = append(results, p.processURL(ctx, url))

		if p.delay > 0 {
			time.Sleep(p.delay)
		}
	}

	return results
}

func (p *Pipeline) processURL(ctx context.Context, url string) models.SummaryResult {
	result := models.SummaryResult{URL: url}

	markup, err := p.fetcher.GetHTML(url)
	if err != nil {
		p.logger.Warn("Failed to fetch URL", "url", url, "error", err)
		result.Notes = models.NoteFetchFailed
		return result
	}

	var digest *models.PageDigest
	if p.readability {
		digest = p.extractor.ExtractReadable(url, markup)
	} else {
		digest = p.extractor.Extract(markup)
	}
	digest.URL = url

	result.Title = digest.Title
	result.MetaDescription = digest.MetaDescription
	result.Language = digest.Language

	if digest.Language != "" && digest.Language != "en" {
		p.logger.Warn("Page does not look English; extractive fallback quality may suffer",
			"url", url, "language", digest.Language)
	}

	// The fallback always summarizes the preview, not the full text: the
	// preview is what the external prompt carries, so both paths see the
	// same content.
	if p.external != nil {
		prompt := gemini.BuildPrompt(digest.Title, digest.MetaDescription, digest.TextPreview)
		if summary, ok := p.external.Summarize(ctx, prompt); ok {
			result.Summary = summary
			result.Notes = models.NoteGeneratedByGemini
			return result
		}
		p.logger.Warn("External summarization failed, falling back to extractive", "url", url)
		result.Summary = p.local.Summarize(digest.TextPreview)
		result.Notes = models.NoteGeminiFailedFallback
		return result
	}

	result.Summary = p.local.Summarize(digest.TextPreview)
	result.Notes = models.NoteNoGeminiLocal
	return result
}
