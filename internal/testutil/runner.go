package testutil

import (
	"context"
	"sync"

	"github.com/avdeyev/vidpull/internal/exec"
)

// FakeRunner is a scripted exec.Runner. Each call records its arguments;
// Stdout is returned as the captured output and Lines are fed to the
// configured stdout line callback, mimicking yt-dlp's streamed progress.
type FakeRunner struct {
	mu    sync.Mutex
	calls [][]string

	Stdout []byte
	Lines  []string
	Err    error
}

func (r *FakeRunner) Run(ctx context.Context, args ...string) error {
	_, err := r.RunWith(ctx, nil, args...)
	return err
}

func (r *FakeRunner) RunWith(
	ctx context.Context,
	options []exec.Option,
	args ...string,
) (*exec.RunResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, args)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}

	config := exec.RunConfig{}
	for _, o := range options {
		o(&config)
	}
	if config.OnStdout != nil {
		for _, line := range r.Lines {
			config.OnStdout([]byte(line))
		}
	}

	return &exec.RunResult{Stdout: r.Stdout}, nil
}

// Calls returns the recorded argument lists.
func (r *FakeRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([][]string, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// LastCall returns the argument list of the most recent invocation.
func (r *FakeRunner) LastCall() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}
