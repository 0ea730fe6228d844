package ui

import (
	"time"

	"github.com/icarus-itcs/lazydroid/internal/console"
	"github.com/icarus-itcs/lazydroid/internal/sdk"
)

// ProcessStatus represents the state of a process
type ProcessStatus int

const (
	ProcessRunning ProcessStatus = iota
	ProcessSuccess
	ProcessFailed
	ProcessCancelled
)

const maxProcessLogs = 5000

// step is a command queued to run once the previous one succeeds
type step struct {
	name    string
	command sdk.Command
}

// Process represents a running or completed tool command
type Process struct {
	ID        string
	Name      string
	Command   sdk.Command
	Status    ProcessStatus
	StartTime time.Time
	EndTime   time.Time
	Logs      []string
	Stream    *console.Stream
	Error     error

	// pending steps run in order after a successful exit
	pending []step
	// openOnSuccess is a project directory to open after a successful exit
	openOnSuccess string
}

// Duration returns how long the process has been running or ran
func (p *Process) Duration() time.Duration {
	if p.Status == ProcessRunning {
		return time.Since(p.StartTime)
	}
	return p.EndTime.Sub(p.StartTime)
}

// StatusIcon returns an icon representing the process status
func (p *Process) StatusIcon() string {
	switch p.Status {
	case ProcessRunning:
		return "◐" // Will be replaced with spinner
	case ProcessSuccess:
		return "✓"
	case ProcessFailed:
		return "✗"
	case ProcessCancelled:
		return "○"
	default:
		return "?"
	}
}

// AddLog adds a log line to the process
func (p *Process) AddLog(line string) {
	p.Logs = append(p.Logs, line)
	if len(p.Logs) > maxProcessLogs {
		p.Logs = p.Logs[len(p.Logs)-maxProcessLogs:]
	}
}

// finish records the exit of the process
func (p *Process) finish(err error) {
	p.EndTime = time.Now()
	p.Error = err
	if err != nil {
		p.Status = ProcessFailed
		p.pending = nil
		p.openOnSuccess = ""
		return
	}
	p.Status = ProcessSuccess
}
