package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-note/internal/logger"
	"github.com/nguyentantai21042004/audio-note/internal/pipeline"
	"github.com/nguyentantai21042004/audio-note/internal/session"
	"github.com/nguyentantai21042004/audio-note/internal/summarize"
	"github.com/nguyentantai21042004/audio-note/internal/transcribe"
)

func newProcessCommand(configPath *string) *cobra.Command {
	var page int
	var model string

	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Run the full pipeline for one video URL",
		Long: `Download the audio of one video, transcribe it and summarize the
transcript. The audio, a transcript.docx and a notes.docx end up in
the video's session folder under the configured download directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := buildApp(ctx, *configPath)
			if err != nil {
				return err
			}

			runCtx, cancel := signalContext(ctx, a.logger)
			defer cancel()

			variant := model
			if variant == "" {
				variant = a.cfg.Whisper.DefaultModel
			}
			return runOnce(runCtx, a, args[0], page, variant)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "1-based playlist item to download (0 = all)")
	cmd.Flags().StringVar(&model, "model", "", "whisper model variant (default from config)")

	return cmd
}

// runOnce drives the three stages sequentially for one URL and writes the
// transcript and notes docx files into the session folder.
func runOnce(ctx context.Context, a *app, url string, page int, variant string) error {
	log := a.logger

	payload, err := awaitStage(ctx, log, func(ev pipeline.Events) (*pipeline.Handle, error) {
		return a.pipe.StartAcquire(ctx, url, page, ev)
	})
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	sess := payload.(*session.Session)
	log.Info(ctx, "Acquired %q: %d file(s) in %s", sess.Title, len(sess.Files), sess.Folder)

	audioPath, err := pickAudioFile(sess.Files)
	if err != nil {
		return err
	}

	payload, err = awaitStage(ctx, log, func(ev pipeline.Events) (*pipeline.Handle, error) {
		return a.pipe.StartTranscribe(ctx, audioPath, variant, ev)
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	transcript := payload.(transcribe.Result)
	log.Info(ctx, "Transcribed (%s, %s, model %s)", transcript.Language, transcript.Duration, transcript.Model)

	transcriptPath := filepath.Join(sess.Folder, "transcript.docx")
	if err := summarize.WriteTranscriptDocx(sess.Title, transcript.Text, transcriptPath); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	log.Info(ctx, "Transcript saved: %s", transcriptPath)

	payload, err = awaitStage(ctx, log, func(ev pipeline.Events) (*pipeline.Handle, error) {
		return a.pipe.StartSummarize(ctx, transcript.Text, a.cfg.Summary.Instruction, ev)
	})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	notes := payload.(summarize.Result)

	notesPath := filepath.Join(sess.Folder, "notes.docx")
	if err := summarize.WriteNotesDocx(sess.Title, notes.Markdown, notesPath); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	log.Info(ctx, "Notes saved: %s", notesPath)

	return nil
}

// awaitStage starts one task, forwards its progress to the log and blocks
// until the terminal event has been delivered.
func awaitStage(ctx context.Context, log logger.Logger, start func(pipeline.Events) (*pipeline.Handle, error)) (interface{}, error) {
	var payload interface{}
	var failMsg string

	h, err := start(pipeline.Events{
		OnProgress: func(msg string) { log.Info(ctx, "  %s", msg) },
		OnSuccess:  func(result interface{}) { payload = result },
		OnError:    func(msg string) { failMsg = msg },
	})
	if err != nil {
		return nil, err
	}
	<-h.Done()

	switch h.State() {
	case pipeline.StateSucceeded:
		return payload, nil
	case pipeline.StateCancelled:
		return nil, context.Canceled
	default:
		return nil, errors.New(failMsg)
	}
}

// pickAudioFile prefers the first mp3 in the session folder, falling back to
// the first file of any kind.
func pickAudioFile(files []string) (string, error) {
	if len(files) == 0 {
		return "", errors.New("no files produced by the download")
	}
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".mp3") {
			return f, nil
		}
	}
	return files[0], nil
}
