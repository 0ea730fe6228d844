// Package console runs tool commands while streaming their output line by
// line, for the terminal UI process tabs and the CLI.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/icarus-itcs/lazydroid/internal/sdk"
)

// Stream is a running command whose stdout and stderr are merged into a
// channel of lines.
type Stream struct {
	command sdk.Command
	cmd     *exec.Cmd
	lines   chan string
	done    chan struct{}
	err     error
}

// Start launches c. Lines() is closed once the process has exited and both
// pipes are drained; Wait then returns the exit status.
func Start(ctx context.Context, c sdk.Command) (*Stream, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &sdk.ToolError{Command: c, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &sdk.ToolError{Command: c, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &sdk.ToolError{Command: c, Err: err}
	}
	slog.Debug("started", "cmd", c.String(), "dir", c.Dir, "pid", cmd.Process.Pid)

	s := &Stream{
		command: c,
		cmd:     cmd,
		lines:   make(chan string, 100),
		done:    make(chan struct{}),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go s.pump(&wg, stdout)
	go s.pump(&wg, stderr)

	go func() {
		wg.Wait()
		if err := cmd.Wait(); err != nil {
			s.err = &sdk.ToolError{Command: c, Err: err}
		}
		slog.Debug("finished", "cmd", c.String(), "err", s.err)
		close(s.lines)
		close(s.done)
	}()
	return s, nil
}

func (s *Stream) pump(wg *sync.WaitGroup, r io.Reader) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	// Increase buffer for long lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("read output", "cmd", s.command.String(), "err", err)
	}
}

// Command returns the command being run.
func (s *Stream) Command() sdk.Command { return s.command }

// Lines delivers output lines in arrival order.
func (s *Stream) Lines() <-chan string { return s.lines }

// Wait blocks until the process exits and returns its error, if any.
// Callers must drain Lines first.
func (s *Stream) Wait() error {
	<-s.done
	return s.err
}

// Kill terminates the process.
func (s *Stream) Kill() error {
	if s.cmd.Process == nil {
		return nil
	}
	return s.cmd.Process.Kill()
}

// Run streams c to w and returns the exit error.
func Run(ctx context.Context, c sdk.Command, w io.Writer) error {
	s, err := Start(ctx, c)
	if err != nil {
		return err
	}
	for line := range s.Lines() {
		fmt.Fprintln(w, line)
	}
	return s.Wait()
}

// Launch starts a GUI tool such as the SDK manager without waiting for it.
func Launch(c sdk.Command) error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	if err := cmd.Start(); err != nil {
		return &sdk.ToolError{Command: c, Err: err}
	}
	slog.Info("launched", "cmd", c.String(), "pid", cmd.Process.Pid)
	go cmd.Wait()
	return nil
}
