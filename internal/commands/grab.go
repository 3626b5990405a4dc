package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	apppkg "github.com/avdeyev/vidpull/internal/app"
	execpkg "github.com/avdeyev/vidpull/internal/exec"
	"github.com/avdeyev/vidpull/internal/fetch"
	"github.com/avdeyev/vidpull/internal/media"
	"github.com/avdeyev/vidpull/internal/pathutil"
	"github.com/avdeyev/vidpull/internal/probe"
	"github.com/avdeyev/vidpull/internal/urlutil"
)

func NewGrabCommand(a *apppkg.App) *cli.Command {
	return &cli.Command{
		Name:  "grab",
		Usage: "Download a single video or audio track from the terminal",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: "mp4",
				Usage: "output kind, mp4 or mp3",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "pick the option for this video height instead of the recommended one",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "list the available options and exit",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: ".",
				Usage: "directory to download into",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.StringArg("url") == "" {
				return fmt.Errorf("%s requires a URL", cmd.FullName())
			}
			return runGrab(a, ctx, cmd)
		},
	}
}

func runGrab(_ *apppkg.App, ctx context.Context, cmd *cli.Command) error {
	cfg := ConfigFromFlags(cmd)

	if err := checkYtdlp(cfg.YtdlpPath); err != nil {
		return err
	}

	kind, err := media.ParseOutputKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	sourceURL, err := urlutil.NormalizeMediaURL(cmd.StringArg("url"))
	if err != nil {
		return fmt.Errorf("bad URL: %w", err)
	}

	runner := execpkg.NewCommandRunner(cfg.YtdlpPath)
	prober := &probe.YtdlpProber{Runner: runner}

	fmt.Printf("(vv) Probing %s...\n", sourceURL)
	info, err := prober.Probe(ctx, sourceURL)
	if err != nil {
		return fmt.Errorf("probing %q: %w", sourceURL, err)
	}
	fmt.Printf("Found '%s'\n", info.Title)

	options := media.Resolve(info.Streams, kind)
	if len(options) == 0 {
		return fmt.Errorf("no downloadable %s streams for %q", kind, sourceURL)
	}

	if cmd.Bool("list") {
		fmt.Print(formatOptionList(options))
		return nil
	}

	option, err := pickOption(options, cmd.Int("height"))
	if err != nil {
		return err
	}
	fmt.Printf("(vv) Downloading '%s'...\n", option.Label)

	bar := progressbar.Default(100)
	fetcher := &fetch.Fetcher{Runner: runner, FFmpegPath: cfg.FFmpegPath}
	result, err := fetcher.Fetch(ctx, fetch.Request{
		URL:       sourceURL,
		Option:    option,
		Kind:      kind,
		TitleBase: pathutil.SanitizeBase(info.Title, 0),
		WorkDir:   cmd.String("output-dir"),
	}, func(ev fetch.Event) {
		if ev.Kind == fetch.EventProgress {
			_ = bar.Set(int(ev.Percent))
		}
	})
	if err != nil {
		return fmt.Errorf("downloading failed: %w", err)
	}
	_ = bar.Finish()

	fmt.Printf(
		"Success! Saved to '%s' (%s)\n",
		result.FilePath,
		pathutil.FormatSize(result.Size),
	)

	return nil
}

func formatOptionList(options []media.DownloadOption) string {
	var sb strings.Builder
	for _, option := range options {
		sb.WriteString("  " + option.Label + "\n")
	}
	return sb.String()
}

func pickOption(options []media.DownloadOption, height int) (media.DownloadOption, error) {
	if height == 0 {
		return options[0], nil
	}

	for _, option := range options {
		if option.Height == height {
			return option, nil
		}
	}

	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label
	}
	return media.DownloadOption{}, fmt.Errorf(
		"no option for %dp, available: %s", height, strings.Join(labels, ", "),
	)
}
