package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/audio-note/internal/acquire"
	"github.com/nguyentantai21042004/audio-note/internal/summarize"
	"github.com/nguyentantai21042004/audio-note/internal/transcribe"
)

// Pipeline composes the three stages behind the orchestrator's task
// contract. Each Start* call dispatches one task of its kind; tasks of
// different kinds run concurrently, same-kind starts are rejected with
// ErrBusy while one is in flight.
type Pipeline struct {
	orch        *Orchestrator
	acquirer    acquire.Acquirer
	transcriber transcribe.Transcriber
	summarizer  summarize.Summarizer
}

// NewPipeline wires the stages to an orchestrator.
func NewPipeline(orch *Orchestrator, a acquire.Acquirer, t transcribe.Transcriber, s summarize.Summarizer) *Pipeline {
	return &Pipeline{
		orch:        orch,
		acquirer:    a,
		transcriber: t,
		summarizer:  s,
	}
}

// StartAcquire downloads the audio for url into a session folder. The
// success payload is a *session.Session.
func (p *Pipeline) StartAcquire(ctx context.Context, url string, item int, events Events) (*Handle, error) {
	return p.orch.Start(ctx, KindAcquire, func(taskCtx context.Context, progress func(string)) (interface{}, error) {
		return p.acquirer.Acquire(taskCtx, url, item, progress)
	}, events)
}

// StartTranscribe runs speech-to-text on audioPath. The success payload is a
// transcribe.Result.
func (p *Pipeline) StartTranscribe(ctx context.Context, audioPath, variant string, events Events) (*Handle, error) {
	return p.orch.Start(ctx, KindTranscribe, func(taskCtx context.Context, progress func(string)) (interface{}, error) {
		return p.transcriber.Transcribe(taskCtx, audioPath, variant, progress)
	}, events)
}

// StartSummarize condenses text through the completion service. The success
// payload is a summarize.Result.
func (p *Pipeline) StartSummarize(ctx context.Context, text, instruction string, events Events) (*Handle, error) {
	return p.orch.Start(ctx, KindSummarize, func(taskCtx context.Context, progress func(string)) (interface{}, error) {
		return p.summarizer.Summarize(taskCtx, text, instruction, progress)
	}, events)
}
