package shell

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

func TestExecMissingBinary(t *testing.T) {
	e := NewExec(time.Second)

	_, err := e.Run(context.Background(), "definitely-not-a-real-binary-atlas")
	require.Error(t, err)

	var cmdErr domain.ErrCommand
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "definitely-not-a-real-binary-atlas", cmdErr.Name)
}

func TestExecTrimsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := NewExec(time.Second).Run(context.Background(), "sh", "-c", "printf '  hello\\n\\n'")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := NewExec(time.Second).Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestExecTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	start := time.Now()
	_, err := NewExec(100*time.Millisecond).Run(context.Background(), "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestLimitedBuffer(t *testing.T) {
	b := limitedBuffer{limit: 4}

	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = b.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "abcd", b.String())

	_, _ = b.Write([]byte(strings.Repeat("x", 10)))
	assert.Equal(t, "abcd", b.String())
}

func TestExecUsesCLocale(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	t.Setenv("LC_ALL", "de_DE.UTF-8")

	out, err := NewExec(time.Second).Run(context.Background(), "sh", "-c", "echo $LC_ALL")
	require.NoError(t, err)
	assert.Equal(t, "C", out)
}
