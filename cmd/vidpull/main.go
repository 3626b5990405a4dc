package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	apppkg "github.com/avdeyev/vidpull/internal/app"
	"github.com/avdeyev/vidpull/internal/commands"
)

func main() {
	app := apppkg.NewApp()

	cliApp := &cli.Command{
		Name:  "vidpull",
		Usage: "A web front end for yt-dlp downloads",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Value: 8080,
				Usage: "port to serve on",
			},
			&cli.StringFlag{
				Name:  "work-dir",
				Value: "temp_downloads",
				Usage: "directory for downloaded files",
			},
			&cli.StringFlag{
				Name:  "ytdlp-path",
				Value: "yt-dlp",
				Usage: "path to the yt-dlp binary",
			},
			&cli.StringFlag{
				Name:  "ffmpeg-path",
				Usage: "path to the ffmpeg binary, if not on PATH",
			},
			&cli.IntFlag{
				Name:  "max-parallel",
				Value: 2,
				Usage: "maximum number of downloads running at once",
			},
			&cli.IntFlag{
				Name:  "max-file-size",
				Value: 500,
				Usage: "largest file the service will hand out, in MiB",
			},
		},
		Commands: []*cli.Command{
			commands.NewServeCommand(app),
			commands.NewGrabCommand(app),
			commands.NewVersionCommand(),
		},
	}

	if err := cliApp.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("error: %v", err)
	}
}
