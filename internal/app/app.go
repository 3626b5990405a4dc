package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/avdeyev/vidpull/internal/exec"
	"github.com/avdeyev/vidpull/internal/fetch"
	"github.com/avdeyev/vidpull/internal/job"
	"github.com/avdeyev/vidpull/internal/probe"
)

// Config carries the service settings collected from CLI flags.
type Config struct {
	Port        int
	WorkDir     string
	YtdlpPath   string
	FFmpegPath  string
	MaxParallel int
	MaxFileSize int64
}

// App wires the prober, fetcher, and job manager behind the HTTP surface.
type App struct {
	Config  *Config
	Prober  probe.Prober
	Cache   *probe.Cache
	Fetcher *fetch.Fetcher
	Jobs    *job.Manager
	Server  *http.Server
	Thumbs  *http.Client
}

func NewApp() *App {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return &App{
		Config: &Config{},
		Cache:  probe.NewCache(),
	}
}

// Initialize prepares the work directory and builds the component graph.
func (a *App) Initialize(cfg *Config) error {
	a.Config = cfg

	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return fmt.Errorf("creating work dir: %w", err)
	}

	runner := exec.NewCommandRunner(cfg.YtdlpPath)
	a.Prober = &probe.YtdlpProber{Runner: runner}
	a.Fetcher = &fetch.Fetcher{Runner: runner, FFmpegPath: cfg.FFmpegPath}
	a.Jobs = job.NewManager(a.Fetcher, cfg.MaxParallel)
	a.Thumbs = newThumbnailClient()

	a.Server = &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 20 * time.Second,
		Handler:           a.Routes(),
	}

	return nil
}

// Routes builds the HTTP mux for the service.
func (a *App) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", WithError(a.IndexHandler))
	mux.HandleFunc("POST /api/probe", WithError(a.ProbeHandler))
	mux.HandleFunc("GET /api/options", WithError(a.OptionsHandler))
	mux.HandleFunc("POST /api/playlist", WithError(a.PlaylistHandler))
	mux.HandleFunc("POST /api/download", WithError(a.DownloadHandler))
	mux.HandleFunc("GET /api/jobs", WithError(a.JobsHandler))
	mux.HandleFunc("GET /api/jobs/{id}", WithError(a.JobHandler))
	mux.HandleFunc("POST /api/jobs/{id}/cancel", WithError(a.CancelHandler))
	mux.HandleFunc("POST /api/cleanup", WithError(a.CleanupHandler))
	mux.HandleFunc("GET /api/thumbnail", WithError(a.ThumbnailHandler))
	mux.HandleFunc("GET /files/{name}", WithError(a.FileHandler))
	return mux
}

func newThumbnailClient() *http.Client {
	client := &retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		RetryMax:     2,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
	}
	return client.StandardClient()
}
