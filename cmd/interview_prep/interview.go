package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/interview-prep/internal/display"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/speech"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run the mock interview for the uploaded resume",
	Long: `Asks the generated questions one at a time. Type your answer and finish it
with an empty line. Each answer is scored; a question may be followed by one
follow-up. Commands on their own line: :play, :mute, :time, :quit.`,
	Args: cobra.NoArgs,
	RunE: withApp(runInterview),
}

var interviewVoice bool

func init() {
	interviewCmd.Flags().BoolVar(&interviewVoice, "voice", false, "Read questions aloud with Murf text-to-speech")
	rootCmd.AddCommand(interviewCmd)
}

const (
	answerHint      = "(finish with an empty line · :play :mute :time :quit)"
	blankAnswerHint = "Please provide an answer before continuing."
)

func runInterview(cmd *cobra.Command, a *app, _ []string) error {
	ctx := cmd.Context()

	ref, err := a.session.Reference(ctx)
	if err != nil {
		return err
	}
	if ref == "" {
		return errors.New("no resume uploaded, run `prep upload <resume.pdf>` first")
	}

	source, scorer, err := a.interviewSources(ctx)
	if err != nil {
		return err
	}
	ctrl := interview.New(source, scorer, a.session, interview.WithLogger(a.log))
	defer ctrl.Close()

	a.printf("Generating personalized questions...\n")
	if err := ctrl.Load(ctx, ref); err != nil {
		return err
	}

	var v *voice
	if interviewVoice {
		v, err = a.newVoice()
		if err != nil {
			return err
		}
		defer v.player.Stop()
	}

	return runInterviewLoop(ctx, ctrl, a.prompt, a.printer, v, a.log)
}

// voice reads questions aloud.
type voice struct {
	murf   *speech.Murf
	player *speech.Player
	log    zerolog.Logger
}

func (a *app) newVoice() (*voice, error) {
	if a.cfg.MurfAPIKey == "" {
		return nil, errors.New("--voice needs a Murf API key (MURF_API_KEY)")
	}
	murf := speech.NewMurf(a.cfg.MurfAPIKey, speech.WithVoice(a.cfg.VoiceID), speech.WithLogger(a.log))
	player := speech.NewPlayer(speech.NewSink(a.cfg.PlayerCommand), a.cfg.CacheDir, speech.WithPlayerLogger(a.log))
	return &voice{murf: murf, player: player, log: a.log}, nil
}

// speak generates and starts the audio for text. Failures are logged only.
func (v *voice) speak(ctx context.Context, text string) {
	if v == nil {
		return
	}
	v.player.Stop()
	url, err := v.murf.Generate(ctx, text)
	if err == nil {
		err = v.player.Load(ctx, url)
	}
	if err == nil {
		_, err = v.player.TogglePlay()
	}
	if err != nil {
		v.log.Warn().Err(err).Msg("text-to-speech unavailable for this question")
	}
}

// command handles a player command and returns the line to print.
func (v *voice) command(name string) string {
	if v == nil {
		return "Voice is off. Start the interview with --voice to hear questions."
	}
	switch name {
	case ":play":
		playing, err := v.player.TogglePlay()
		if err != nil {
			return "Playback error: " + err.Error()
		}
		if playing {
			return "▶ " + v.player.Status()
		}
		return "⏸ " + v.player.Status()
	case ":mute":
		muted, err := v.player.ToggleMute()
		if err != nil {
			return "Playback error: " + err.Error()
		}
		if muted {
			return "Muted"
		}
		return "Unmuted"
	default:
		return v.player.Status()
	}
}

// runInterviewLoop asks every question until the controller completes or the user quits.
//
//nolint:errcheck // terminal output
func runInterviewLoop(ctx context.Context, ctrl *interview.Controller, p *prompter, pr *display.Printer, v *voice, log zerolog.Logger) error {
	out := p.out
	for {
		question, progress, ok := ctrl.Current()
		if !ok {
			break
		}
		pr.PrintQuestion(question, progress, ctrl.Category())
		v.speak(ctx, question)

		answer, quit, err := readAnswer(p, v)
		if err != nil {
			return err
		}
		if quit {
			ctrl.Close()
			fmt.Fprintln(out, "Interview stopped. Answers submitted so far are saved.")
			return nil
		}

		if strings.TrimSpace(answer) == "" {
			fmt.Fprintln(out, blankAnswerHint)
			continue
		}

		fmt.Fprintln(out, "Scoring...")
		outcome, err := ctrl.Submit(ctx, answer)
		switch {
		case errors.Is(err, interview.ErrBlankAnswer):
			fmt.Fprintln(out, blankAnswerHint)
			continue
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Debug().Err(err).Msg("submission failed")
			fmt.Fprintf(out, "Could not score your answer: %v\nTry submitting again.\n", err)
			continue
		}

		pr.PrintFeedback(outcome.Answered)
		if outcome.FollowUp {
			fmt.Fprintln(out, "The interviewer has a follow-up question.")
		}
		if outcome.Completed {
			break
		}
	}

	fmt.Fprintln(out, "Interview complete! See your results with `prep results`.")
	return nil
}

// readAnswer reads answer lines until an empty line. Player commands on their
// own line are handled and not included.
//
//nolint:errcheck // terminal output
func readAnswer(p *prompter, v *voice) (answer string, quit bool, err error) {
	fmt.Fprintln(p.out, answerHint)
	var lines []string
	for {
		line, err := p.readLine()
		if errors.Is(err, errAborted) {
			if len(lines) == 0 {
				return "", true, nil
			}
			return strings.Join(lines, "\n"), false, nil
		}
		if err != nil {
			return "", false, err
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case "":
			return strings.Join(lines, "\n"), false, nil
		case ":quit", ":q":
			return "", true, nil
		case ":play", ":pause", ":mute", ":time":
			if cmd == ":pause" {
				cmd = ":play"
			}
			fmt.Fprintln(p.out, v.command(cmd))
		default:
			lines = append(lines, line)
		}
	}
}
