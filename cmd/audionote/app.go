package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/audio-note/internal/acquire"
	"github.com/nguyentantai21042004/audio-note/internal/completion"
	"github.com/nguyentantai21042004/audio-note/internal/config"
	"github.com/nguyentantai21042004/audio-note/internal/downloader"
	"github.com/nguyentantai21042004/audio-note/internal/logger"
	"github.com/nguyentantai21042004/audio-note/internal/pipeline"
	"github.com/nguyentantai21042004/audio-note/internal/session"
	"github.com/nguyentantai21042004/audio-note/internal/summarize"
	"github.com/nguyentantai21042004/audio-note/internal/transcribe"
	"github.com/nguyentantai21042004/audio-note/pkg/executor"
)

// app holds the wired components shared by every command.
type app struct {
	cfg        *config.Config
	logger     logger.Logger
	downloader downloader.Downloader
	store      session.Store
	pipe       *pipeline.Pipeline
}

// buildApp loads the config and constructs the stages. Downloader
// construction fails fast when ffmpeg cannot be located.
func buildApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio Note Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Download dir: %s", cfg.Paths.DownloadDir)
	log.Info(ctx, "Whisper model dir: %s", cfg.Whisper.ModelDir)

	exec := executor.New()
	store := session.New(cfg.Paths.DownloadDir, cfg.Paths.HistoryFile, log)

	dl, err := downloader.New(exec, log, cfg.FFmpeg.Path, cfg.FFmpeg.AudioQuality)
	if err != nil {
		return nil, err
	}

	acquirer := acquire.New(dl, store, log)
	loader := transcribe.NewWhisperLoader(exec, log, cfg.Whisper.BinaryPath, cfg.Whisper.ModelDir, cfg.Whisper.Language, cfg.Whisper.Threads)
	transcriber := transcribe.New(loader, log)

	service, err := newCompletionService(cfg)
	if err != nil {
		log.Warn(ctx, "Summarization disabled: %v", err)
	}
	summarizer := summarize.New(service, log, cfg.Summary.ChunkSize)

	orch := pipeline.New(log, nil)
	pipe := pipeline.NewPipeline(orch, acquirer, transcriber, summarizer)

	return &app{
		cfg:        cfg,
		logger:     log,
		downloader: dl,
		store:      store,
		pipe:       pipe,
	}, nil
}

// newCompletionService selects the completion backend: Gemini when API keys
// are configured, otherwise DeepSeek.
func newCompletionService(cfg *config.Config) (completion.Service, error) {
	if len(cfg.Gemini.APIKeys) > 0 {
		return completion.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model)
	}
	return completion.NewDeepSeek(cfg.DeepSeek.APIKey, cfg.DeepSeek.BaseURL, cfg.DeepSeek.Model)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(parent context.Context, log logger.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(context.Background(), "Received signal %v, shutting down", sig)
		cancel()
	}()

	return ctx, cancel
}
