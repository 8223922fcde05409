package summarize

import (
	"strings"
	"testing"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		size      int
		wantCount int
		wantLast  int // length of the last chunk
	}{
		{"even split", strings.Repeat("a", 10), 5, 2, 5},
		{"remainder", strings.Repeat("a", 12), 5, 3, 2},
		{"single chunk", "abc", 100, 1, 3},
		{"size one", "abc", 1, 3, 1},
		{"size clamped to one", "abc", 0, 3, 1},
		{"negative size clamped", "abc", -7, 3, 1},
		{"exact boundary", strings.Repeat("a", 5000), 5000, 1, 5000},
		{"scenario C", strings.Repeat("x", 12000), 5000, 3, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitChunks(tt.text, tt.size)
			if len(chunks) != tt.wantCount {
				t.Fatalf("chunk count = %d, want %d", len(chunks), tt.wantCount)
			}
			if got := len(chunks[len(chunks)-1]); got != tt.wantLast {
				t.Errorf("last chunk length = %d, want %d", got, tt.wantLast)
			}
			// Concatenation reproduces the input exactly.
			if joined := strings.Join(chunks, ""); joined != tt.text {
				t.Error("concatenated chunks do not reproduce the input")
			}
		})
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	if chunks := SplitChunks("", 5); chunks != nil {
		t.Errorf("SplitChunks(\"\") = %v, want nil", chunks)
	}
}

func TestSplitChunksMultibyte(t *testing.T) {
	// Rune counting: CJK text must not be cut mid-character.
	chunks := SplitChunks(strings.Repeat("视频", 8), 5)
	if len(chunks) != 4 {
		t.Fatalf("chunk count = %d, want 4", len(chunks))
	}
	if got := []rune(chunks[0]); len(got) != 5 {
		t.Errorf("first chunk runes = %d, want 5", len(got))
	}
	if joined := strings.Join(chunks, ""); joined != strings.Repeat("视频", 8) {
		t.Error("concatenated chunks do not reproduce the input")
	}
}

func TestSplitChunksAllButLastFullSize(t *testing.T) {
	chunks := SplitChunks(strings.Repeat("z", 12345), 1000)
	for i, c := range chunks[:len(chunks)-1] {
		if len(c) != 1000 {
			t.Errorf("chunk %d length = %d, want 1000", i, len(c))
		}
	}
}
