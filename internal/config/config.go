package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Summary  SummaryConfig  `yaml:"summary"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type PathsConfig struct {
	DownloadDir string `yaml:"download_dir"`
	HistoryFile string `yaml:"history_file"`
}

type WhisperConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	ModelDir     string `yaml:"model_dir"`
	DefaultModel string `yaml:"default_model"`
	Language     string `yaml:"language"`
	Threads      int    `yaml:"threads"`
}

type FFmpegConfig struct {
	// Path overrides discovery. Leave empty to probe FFMPEG_PATH, $PATH and
	// common install locations.
	Path         string `yaml:"path"`
	AudioQuality string `yaml:"audio_quality"`
}

type DeepSeekConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type SummaryConfig struct {
	ChunkSize   int    `yaml:"chunk_size"`
	Instruction string `yaml:"instruction"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates the yaml config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelDir == "" {
		return fmt.Errorf("whisper.model_dir is required")
	}

	if c.Paths.DownloadDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		c.Paths.DownloadDir = filepath.Join(home, "AudioNote_Downloads")
	}
	if c.Paths.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		c.Paths.HistoryFile = filepath.Join(home, ".audionote_history.json")
	}
	if c.Whisper.DefaultModel == "" {
		c.Whisper.DefaultModel = "base"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.AudioQuality == "" {
		c.FFmpeg.AudioQuality = "192K"
	}
	if c.DeepSeek.BaseURL == "" {
		c.DeepSeek.BaseURL = "https://api.deepseek.com/v1/chat/completions"
	}
	if c.DeepSeek.Model == "" {
		c.DeepSeek.Model = "deepseek-chat"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summary.ChunkSize == 0 {
		c.Summary.ChunkSize = 5000
	}
	if c.Summary.Instruction == "" {
		c.Summary.Instruction = "Summarize the following content into structured Markdown notes with key information, bullet lists and actionable to-do items."
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8001"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
