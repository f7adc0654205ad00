package models

// PageDigest is the structured extraction of a single fetched page.
type PageDigest struct {
	URL             string
	Title           string
	MetaDescription string
	TextPreview     string // bounded prefix of the visible text
	FullText        string // entire visible text
	Language        string // ISO-639-1 guess, empty when undetected
}

// Notes values recorded on a SummaryResult. Exactly one applies per URL.
const (
	NoteFetchFailed          = "fetch_failed"
	NoteGeneratedByGemini    = "generated_by_gemini"
	NoteGeminiFailedFallback = "gemini_failed_fallback_extractive"
	NoteNoGeminiLocal        = "no_gemini_local_extractive"
)

// SummaryResult is the per-URL outcome of a summarize run. One result is
// produced for every input URL, in input order, regardless of failures.
type SummaryResult struct {
	URL             string
	Title           string
	MetaDescription string
	Summary         string
	Notes           string
	Language        string // not part of the CSV contract; kept for run history
}
