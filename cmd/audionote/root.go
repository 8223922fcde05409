package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "audionote",
		Short: "Turn a video URL into audio, a transcript and summarized notes",
		Long: `audionote downloads the audio track of a bilibili or YouTube video,
transcribes it with whisper.cpp and condenses the transcript into
structured notes through a chat completion service.

Run "audionote process <url>" for a one-shot pipeline run, or
"audionote serve" to host the HTTP API.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the yaml config file")

	cmd.AddCommand(newProcessCommand(&configPath))
	cmd.AddCommand(newServeCommand(&configPath))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
