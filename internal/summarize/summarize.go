package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when there is no text to summarize after
// whitespace trimming.
var ErrEmptyInput = errors.New("text is empty, nothing to summarize")

// ErrNotConfigured is returned when no completion service is available.
var ErrNotConfigured = errors.New("completion service is not configured")

const markdownHeading = "# Summary Notes"

// Summarize splits text into chunks, summarizes them sequentially and joins
// the replies in chunk order. A failure on any chunk aborts the job: later
// chunks are never sent and no partial sections are returned.
func (s *implSummarizer) Summarize(ctx context.Context, text, instruction string, onProgress func(string)) (Result, error) {
	if s.service == nil {
		return Result{}, ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	chunks := SplitChunks(text, s.chunkSize)
	total := len(chunks)
	s.logger.Info(ctx, "Summarizing %d characters in %d chunks", len(text), total)

	sections := make([]string, 0, total)
	for i, chunk := range chunks {
		prompt := fmt.Sprintf(
			"%s\n\nThis is part %d of %d of the text. Summarize or analyze it as instructed:\n\n%s",
			instruction, i+1, total, chunk)

		reply, err := s.service.Complete(ctx, nil, prompt)
		if err != nil {
			return Result{}, fmt.Errorf("chunk %d/%d: %w", i+1, total, err)
		}
		sections = append(sections, reply)

		if onProgress != nil {
			onProgress(fmt.Sprintf("completed part %d/%d", i+1, total))
		}
	}

	return Result{
		Markdown: assembleMarkdown(sections),
		Sections: sections,
	}, nil
}

// assembleMarkdown joins the sections, each under its 1-based sub-heading,
// in strict chunk order.
func assembleMarkdown(sections []string) string {
	parts := make([]string, 0, len(sections))
	for i, section := range sections {
		parts = append(parts, fmt.Sprintf("## Section %d\n\n%s", i+1, section))
	}
	return markdownHeading + "\n\n" + strings.Join(parts, "\n\n")
}
