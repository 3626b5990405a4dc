package exec_test

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/vidpull/internal/exec"
	"github.com/avdeyev/vidpull/internal/testutil"
)

func getShellCommand(script string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd.exe", []string{"/c", script}
	}
	return "sh", []string{"-c", script}
}

func TestCommandRunner_Name(t *testing.T) {
	t.Parallel()

	runner := exec.NewCommandRunner("/usr/local/bin/yt-dlp")
	assert.Equal(t, "yt-dlp", runner.Name)
}

func TestCommandRunner_RunWith_Quiet(t *testing.T) {
	t.Parallel()

	shell, args := getShellCommand(
		`printf "stdout line 1\nstdout line 2\n" && printf "stderr line 1\n" 1>&2`,
	)
	runner := exec.NewCommandRunner(shell)

	got, err := runner.RunWith(
		context.Background(),
		[]exec.Option{exec.WithQuiet()},
		args...,
	)
	require.NoError(t, err)

	if diff := cmp.Diff([]byte("stdout line 1\nstdout line 2\n"), got.Stdout); diff != "" {
		t.Errorf("captured stdout mismatch %s", testutil.PrintWantGot(diff))
	}
	if diff := cmp.Diff([]byte("stderr line 1\n"), got.Stderr); diff != "" {
		t.Errorf("captured stderr mismatch %s", testutil.PrintWantGot(diff))
	}
}

func TestCommandRunner_RunWith_LineCallbacks(t *testing.T) {
	t.Parallel()

	// Carriage returns split lines too, matching yt-dlp progress output.
	shell, args := getShellCommand(`printf "line 1\rline 2\nline 3\n"`)
	runner := exec.NewCommandRunner(shell)

	var lines [][]byte
	_, err := runner.RunWith(
		context.Background(),
		[]exec.Option{
			exec.WithLineCallbacks(
				func(b []byte) { lines = append(lines, bytes.Clone(b)) },
				nil,
			),
		},
		args...,
	)
	require.NoError(t, err)

	want := [][]byte{[]byte("line 1"), []byte("line 2"), []byte("line 3")}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("callback lines mismatch %s", testutil.PrintWantGot(diff))
	}
}

func TestCommandRunner_Run_ContextCancel(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("sleep semantics differ on windows")
	}

	runner := exec.NewCommandRunner("sh")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx, "-c", "sleep 10")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCommandRunner_Run_ExitError(t *testing.T) {
	t.Parallel()

	shell, args := getShellCommand("exit 3")
	runner := exec.NewCommandRunner(shell)

	_, err := runner.RunWith(context.Background(), []exec.Option{exec.WithQuiet()}, args...)
	assert.Error(t, err)
}
