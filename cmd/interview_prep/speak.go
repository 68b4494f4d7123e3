package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Read text aloud with Murf text-to-speech",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(runSpeak),
}

var speakSave bool

func init() {
	speakCmd.Flags().BoolVar(&speakSave, "url", false, "Print the audio URL instead of playing it")
	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, a *app, args []string) error {
	ctx := cmd.Context()
	v, err := a.newVoice()
	if err != nil {
		return err
	}
	defer v.player.Stop()

	url, err := v.murf.Generate(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if speakSave {
		a.printf("%s\n", url)
		return nil
	}

	if err := v.player.Load(ctx, url); err != nil {
		return err
	}
	if _, err := v.player.TogglePlay(); err != nil {
		return err
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for v.player.Playing() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	a.printf("%s\n", v.player.Status())
	return nil
}
