package summarize

import "context"

// Result is a fully reassembled summary.
type Result struct {
	// Markdown is the combined document: a top heading, then every section
	// under its own 1-based "Section k" sub-heading.
	Markdown string
	// Sections holds the per-chunk completion outputs in chunk order.
	Sections []string
}

// Summarizer condenses a long transcript by splitting it into fixed-size
// chunks, summarizing each through the completion service, and reassembling
// the replies in chunk order.
type Summarizer interface {
	Summarize(ctx context.Context, text, instruction string, onProgress func(string)) (Result, error)
}
