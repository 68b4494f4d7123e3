package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Sink plays an audio file.
type Sink interface {
	Open(path string) (Stream, error)
}

// Stream is one playback started by a Sink.
type Stream interface {
	Pause() error
	Resume() error
	Close() error
}

// ErrNoPlayer is returned when no player command is configured.
var ErrNoPlayer = errors.New("no audio player configured")

// SilentSink discards audio. The player clock still runs.
type SilentSink struct{}

// Open implements Sink.
func (SilentSink) Open(string) (Stream, error) { return silentStream{}, nil }

type silentStream struct{}

func (silentStream) Pause() error  { return nil }
func (silentStream) Resume() error { return nil }
func (silentStream) Close() error  { return nil }

// CommandSink runs an external player such as "afplay" or "aplay -q".
// The file path is appended to the command line.
type CommandSink struct {
	Command string
}

// NewSink returns a CommandSink for command, or SilentSink when command is blank.
func NewSink(command string) Sink {
	if strings.TrimSpace(command) == "" {
		return SilentSink{}
	}
	return &CommandSink{Command: command}
}

// Open implements Sink.
func (s *CommandSink) Open(path string) (Stream, error) {
	fields := strings.Fields(s.Command)
	if len(fields) == 0 {
		return nil, ErrNoPlayer
	}
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start %s: %w", fields[0], err)
	}
	st := &commandStream{cmd: cmd, cancel: cancel, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(st.done)
	}()
	return st, nil
}

type commandStream struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (s *commandStream) exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *commandStream) Pause() error {
	if s.exited() {
		return nil
	}
	return suspend(s.cmd.Process)
}

func (s *commandStream) Resume() error {
	if s.exited() {
		return nil
	}
	return resume(s.cmd.Process)
}

func (s *commandStream) Close() error {
	s.once.Do(func() {
		if !s.exited() {
			_ = resume(s.cmd.Process)
		}
		s.cancel()
	})
	<-s.done
	return nil
}
