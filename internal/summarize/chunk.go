package summarize

// SplitChunks cuts text into contiguous, non-overlapping substrings of
// exactly size characters; the last chunk may be shorter. size is clamped to
// a minimum of 1. This is a hard character split; it does not respect
// sentence or paragraph boundaries. Splitting counts runes, never cutting a
// multibyte character in half.
func SplitChunks(text string, size int) []string {
	if size < 1 {
		size = 1
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
