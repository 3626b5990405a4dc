package commands

import (
	"fmt"
	"os/exec"

	"github.com/urfave/cli/v3"

	apppkg "github.com/avdeyev/vidpull/internal/app"
)

func checkYtdlp(path string) error {
	_, err := exec.LookPath(path)
	if err != nil {
		return fmt.Errorf("unable to find yt-dlp: %w", err)
	}
	return nil
}

// ConfigFromFlags collects the root-level flags into a service config. The
// max-file-size flag is given in MiB.
func ConfigFromFlags(cmd *cli.Command) *apppkg.Config {
	return &apppkg.Config{
		Port:        cmd.Int("port"),
		WorkDir:     cmd.String("work-dir"),
		YtdlpPath:   cmd.String("ytdlp-path"),
		FFmpegPath:  cmd.String("ffmpeg-path"),
		MaxParallel: cmd.Int("max-parallel"),
		MaxFileSize: int64(cmd.Int("max-file-size")) << 20,
	}
}
