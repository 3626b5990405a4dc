package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	apppkg "github.com/avdeyev/vidpull/internal/app"
	"github.com/avdeyev/vidpull/internal/urlutil"
)

func NewServeCommand(a *apppkg.App) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the download web service",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(a, ctx, cmd)
		},
	}
}

func runServe(a *apppkg.App, _ context.Context, cmd *cli.Command) error {
	cfg := ConfigFromFlags(cmd)

	if err := checkYtdlp(cfg.YtdlpPath); err != nil {
		return err
	}

	if err := a.Initialize(cfg); err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	fmt.Printf(
		"(vv) Listening on %s...\n",
		urlutil.FormatServerAddress(a.Server.Addr),
	)
	err := a.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
