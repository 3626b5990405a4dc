package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/avdeyev/vidpull/internal/exec"
	"github.com/avdeyev/vidpull/internal/media"
)

// ErrOutputNotFound indicates the download finished but the final file could
// not be located in the work directory.
var ErrOutputNotFound = errors.New("downloaded file not found")

// Request describes one download to perform: the source URL, the resolved
// option whose selector goes to yt-dlp verbatim, and the naming inputs.
type Request struct {
	URL       string
	Option    media.DownloadOption
	Kind      media.OutputKind
	TitleBase string
	WorkDir   string
}

// Result reports where the finished file ended up. The path is threaded back
// through the call chain; nothing about a finished download lives in package
// state.
type Result struct {
	FilePath string
	Size     int64
}

// Fetcher downloads a selected option by driving the yt-dlp binary, which
// itself delegates merging and audio extraction to ffmpeg.
type Fetcher struct {
	Runner     exec.Runner
	FFmpegPath string
}

// Fetch runs the download and returns the final file location. Progress
// events parsed from the downloader's output are forwarded to onProgress
// when it is non-nil.
func (f *Fetcher) Fetch(
	ctx context.Context,
	req Request,
	onProgress func(Event),
) (*Result, error) {
	if req.Option.Selector == "" {
		return nil, errors.New("empty format selector")
	}

	var lastPath string
	onLine := func(line []byte) {
		event, ok := ParseLine(string(line))
		if !ok {
			return
		}
		if event.Path != "" {
			lastPath = event.Path
		}
		if onProgress != nil {
			onProgress(event)
		}
	}

	args := f.buildArgs(req)
	slog.Debug("starting download", "url", req.URL, "selector", req.Option.Selector)

	_, err := f.Runner.RunWith(
		ctx,
		[]exec.Option{exec.WithLineCallbacks(onLine, onLine)},
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("downloading %q: %w", req.URL, err)
	}

	path, err := f.locateOutput(req, lastPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checking output file: %w", err)
	}

	return &Result{FilePath: path, Size: info.Size()}, nil
}

func (f *Fetcher) buildArgs(req Request) []string {
	template := filepath.Join(
		req.WorkDir,
		req.TitleBase+"_%(format_id)s.%(ext)s",
	)

	args := []string{
		"--format", req.Option.Selector,
		"--output", template,
		"--newline",
		"--no-playlist",
		"--retries", "3",
	}
	if f.FFmpegPath != "" {
		args = append(args, "--ffmpeg-location", f.FFmpegPath)
	}

	switch req.Kind {
	case media.KindAudio:
		args = append(
			args,
			"--extract-audio",
			"--audio-format", media.AudioContainer,
			"--audio-quality", "320K",
		)
	default:
		if req.Option.RequiresMerge {
			args = append(args, "--merge-output-format", media.VideoContainer)
		}
	}

	return append(args, req.URL)
}

// locateOutput prefers the destination the downloader reported for the
// final stage; when that is missing or stale (a pre-merge temp name), it
// scans the work directory the way the final container predicts.
func (f *Fetcher) locateOutput(req Request, reported string) (string, error) {
	wantExt := "." + req.Option.Container

	if reported != "" && strings.HasSuffix(reported, wantExt) {
		if _, err := os.Stat(reported); err == nil {
			return reported, nil
		}
	}

	pattern := filepath.Join(req.WorkDir, req.TitleBase+"_*"+wantExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("scanning work dir: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %q file for %q", ErrOutputNotFound, wantExt, req.TitleBase)
	}

	// Multiple survivors can only differ by format id; pick determinately.
	best := matches[0]
	for _, m := range matches[1:] {
		if m < best {
			best = m
		}
	}
	return best, nil
}
