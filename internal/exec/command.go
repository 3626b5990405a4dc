package exec

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	execpkg "os/exec"
	"path/filepath"
)

// Runner defines the interface for executing external binaries (yt-dlp,
// ffmpeg). Implementations respect context cancellation so a running
// download can be stopped from the job manager.
type Runner interface {
	Run(ctx context.Context, args ...string) error
	RunWith(ctx context.Context, options []Option, args ...string) (*RunResult, error)
}

// RunResult contains the captured output from a command.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// RunConfig configures command execution.
type RunConfig struct {
	Stdin    io.Reader
	OnStdout func([]byte)
	OnStderr func([]byte)
	capture  bool
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

// Option is a functional option for configuring RunConfig.
type Option func(*RunConfig)

// WithStdin sets an io.Reader as stdin for the command.
func WithStdin(r io.Reader) Option {
	return func(o *RunConfig) {
		o.Stdin = r
	}
}

// WithQuiet captures stdout and stderr instead of forwarding them.
func WithQuiet() Option {
	return func(o *RunConfig) {
		o.capture = true
		o.stdout = &bytes.Buffer{}
		o.stderr = &bytes.Buffer{}
		o.OnStdout = func(line []byte) { o.stdout.Write(line); o.stdout.WriteByte('\n') }
		o.OnStderr = func(line []byte) { o.stderr.Write(line); o.stderr.WriteByte('\n') }
	}
}

// WithLineCallbacks sets handlers invoked once per output line. yt-dlp
// progress updates arrive as carriage-return terminated lines; both
// terminators are treated as line boundaries.
func WithLineCallbacks(onStdout, onStderr func([]byte)) Option {
	return func(o *RunConfig) {
		o.OnStdout = onStdout
		o.OnStderr = onStderr
	}
}

// CommandRunner executes actual commands.
type CommandRunner struct {
	Path string
	Name string
}

// NewCommandRunner creates a new CommandRunner with binary path.
func NewCommandRunner(path string) *CommandRunner {
	return &CommandRunner{Path: path, Name: filepath.Base(path)}
}

// Run executes the command and forwards output to the console.
func (r *CommandRunner) Run(ctx context.Context, args ...string) error {
	_, err := r.RunWith(ctx, nil, args...)
	return err
}

// RunWith executes the command with functional options and returns captured
// output if requested.
func (r *CommandRunner) RunWith(
	ctx context.Context,
	options []Option,
	args ...string,
) (*RunResult, error) {
	config := RunConfig{
		OnStdout: r.printCallback(),
		OnStderr: r.printCallback(),
	}
	for _, o := range options {
		o(&config)
	}

	err := r.runWithConfig(ctx, config, args...)

	var result *RunResult
	if config.capture {
		result = &RunResult{
			Stdout: config.stdout.Bytes(),
			Stderr: config.stderr.Bytes(),
		}
	}

	return result, err
}

func (r *CommandRunner) printCallback() func([]byte) {
	return func(line []byte) {
		fmt.Printf("%s: %s\n", r.Name, line)
	}
}

func (r *CommandRunner) runWithConfig(
	ctx context.Context,
	config RunConfig,
	args ...string,
) error {
	cmd := execpkg.CommandContext(ctx, r.Path, args...) // #nosec: G204

	if config.Stdin != nil {
		cmd.Stdin = config.Stdin
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting command: %w", err)
	}

	done := make(chan struct{}, 2)
	handle := func(p io.ReadCloser, h func([]byte)) {
		go func() {
			defer func() { done <- struct{}{} }()
			if h == nil {
				io.Copy(io.Discard, p)
				return
			}
			streamLines(p, h)
		}()
	}
	handle(stdout, config.OnStdout)
	handle(stderr, config.OnStderr)

	<-done
	<-done

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running %s: %w", r.Name, err)
	}
	return nil
}

func streamLines(pipe io.ReadCloser, handler func([]byte)) {
	reader := bufio.NewReader(pipe)
	var buf bytes.Buffer
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if buf.Len() > 0 {
				handler(buf.Bytes())
			}
			return
		}
		switch b {
		case '\n', '\r':
			if buf.Len() > 0 {
				handler(buf.Bytes())
			}
			buf.Reset()
		default:
			buf.WriteByte(b)
		}
	}
}
