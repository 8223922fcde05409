package transcribe

import "context"

// Segment is one timed piece of recognized speech, in temporal order.
type Segment struct {
	Text string
	End  float64 // seconds from the start of the audio
}

// Info is the per-file metadata an engine reports after a run.
type Info struct {
	Language string
	Duration float64 // seconds, 0 when unknown
}

// Engine is one loaded speech-to-text model. Engines are expensive to
// construct and are cached by the stage; a single engine runs one inference
// at a time.
type Engine interface {
	Run(ctx context.Context, audioPath string) ([]Segment, Info, error)
}

// Loader constructs an Engine for a model variant (base, small, medium, ...).
type Loader interface {
	Load(ctx context.Context, variant string) (Engine, error)
}

// Result is the assembled transcription output.
type Result struct {
	Text     string // trimmed segment texts joined with newlines
	Language string // detected language, "unknown" when the engine reports none
	Duration string // "%.1fs", or empty when unavailable
	Model    string // the variant that produced this result
}

// Transcriber is the transcription stage.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, variant string, onProgress func(string)) (Result, error)
}
