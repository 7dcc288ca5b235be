package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

const (
	DefaultTimeout = 5 * time.Second
	maxOutputBytes = 64 << 10
	waitDelay      = 500 * time.Millisecond
)

// Runner executes read-only OS utilities and returns their standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Exec runs commands as child processes, one at a time, each bounded by
// Timeout. Output beyond 64 KiB is discarded.
type Exec struct {
	Timeout  time.Duration
	lookPath func(string) (string, error)
}

func NewExec(timeout time.Duration) *Exec {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exec{Timeout: timeout, lookPath: exec.LookPath}
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	path, err := e.lookPath(name)
	if err != nil {
		return "", domain.ErrCommand{Name: name, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	var stdout limitedBuffer
	stdout.limit = maxOutputBytes

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.WaitDelay = waitDelay
	hideWindow(cmd)

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = context.DeadlineExceeded
		}
		return "", domain.ErrCommand{Name: name, Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

type limitedBuffer struct {
	bytes.Buffer
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if room := b.limit - b.Len(); room < len(p) {
		if room > 0 {
			b.Buffer.Write(p[:room])
		}
		return n, nil
	}
	b.Buffer.Write(p)
	return n, nil
}
