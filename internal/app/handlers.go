package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avdeyev/vidpull/internal/fetch"
	"github.com/avdeyev/vidpull/internal/job"
	"github.com/avdeyev/vidpull/internal/media"
	"github.com/avdeyev/vidpull/internal/pathutil"
	"github.com/avdeyev/vidpull/internal/probe"
	"github.com/avdeyev/vidpull/internal/urlutil"
	"github.com/avdeyev/vidpull/internal/web"
)

const maxThumbnailBytes = 5 << 20

type urlRequest struct {
	URL string `json:"url"`
}

type jsonOption struct {
	Label         string `json:"label"`
	RequiresMerge bool   `json:"requiresMerge"`
	Container     string `json:"container"`
}

type probeResponse struct {
	Title     string      `json:"title"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Duration  string      `json:"duration,omitempty"`
	SourceURL string      `json:"sourceUrl"`
	Options   jsonOptions `json:"options"`
	Streams   int         `json:"streamCount"`
}

type jsonOptions struct {
	Video []jsonOption `json:"mp4"`
	Audio []jsonOption `json:"mp3"`
}

type downloadRequest struct {
	URL   string `json:"url"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

func (a *App) IndexHandler(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderIndex(w); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return nil
}

// ProbeHandler inspects a URL and returns its metadata together with the
// resolved options for both output kinds, so the kind toggle in the UI needs
// no further round trips.
func (a *App) ProbeHandler(w http.ResponseWriter, r *http.Request) error {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Errorf(http.StatusBadRequest, "decoding request: %w", err)
	}

	sourceURL, err := urlutil.NormalizeMediaURL(req.URL)
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad media URL: %w", err)
	}

	info, ok := a.Cache.Get(sourceURL)
	if !ok {
		info, err = a.Prober.Probe(r.Context(), sourceURL)
		if errors.Is(err, probe.ErrNoMedia) {
			return Errorf(http.StatusUnprocessableEntity, "probing %q: %w", sourceURL, err)
		}
		if err != nil {
			return fmt.Errorf("probing %q: %w", sourceURL, err)
		}
		a.Cache.Put(info)
	}

	resp := probeResponse{
		Title:     info.Title,
		Thumbnail: info.ThumbnailURL,
		SourceURL: info.SourceURL,
		Options: jsonOptions{
			Video: toJSONOptions(media.Resolve(info.Streams, media.KindVideo)),
			Audio: toJSONOptions(media.Resolve(info.Streams, media.KindAudio)),
		},
		Streams: len(info.Streams),
	}
	if info.Duration > 0 {
		resp.Duration = pathutil.FormatDuration(info.Duration)
	}

	return writeJSON(w, resp)
}

// OptionsHandler re-resolves the cached probe for one output kind. The page
// itself uses the options bundled in the probe response; this endpoint keeps
// the resolver reachable for API clients without a fresh probe.
func (a *App) OptionsHandler(w http.ResponseWriter, r *http.Request) error {
	sourceURL, err := urlutil.NormalizeMediaURL(r.URL.Query().Get("url"))
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad media URL: %w", err)
	}

	kind, err := media.ParseOutputKind(r.URL.Query().Get("kind"))
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad output kind: %w", err)
	}

	info, ok := a.Cache.Get(sourceURL)
	if !ok {
		return Errorf(http.StatusConflict, "URL %q has not been probed", sourceURL)
	}

	return writeJSON(w, toJSONOptions(media.Resolve(info.Streams, kind)))
}

func (a *App) PlaylistHandler(w http.ResponseWriter, r *http.Request) error {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Errorf(http.StatusBadRequest, "decoding request: %w", err)
	}

	sourceURL, err := urlutil.NormalizeMediaURL(req.URL)
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad playlist URL: %w", err)
	}

	playlist, err := a.Prober.ProbePlaylist(r.Context(), sourceURL)
	if errors.Is(err, probe.ErrNoMedia) {
		return Errorf(http.StatusUnprocessableEntity, "probing playlist %q: %w", sourceURL, err)
	}
	if err != nil {
		return fmt.Errorf("probing playlist %q: %w", sourceURL, err)
	}

	return writeJSON(w, playlist)
}

// DownloadHandler starts a job for an already probed URL. The option label
// is the lookup key: the handler re-resolves the cached streams and matches
// the label against the result, so a stale or fabricated label is rejected.
func (a *App) DownloadHandler(w http.ResponseWriter, r *http.Request) error {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Errorf(http.StatusBadRequest, "decoding request: %w", err)
	}

	kind, err := media.ParseOutputKind(req.Kind)
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad output kind: %w", err)
	}

	sourceURL, err := urlutil.NormalizeMediaURL(req.URL)
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad media URL: %w", err)
	}

	info, ok := a.Cache.Get(sourceURL)
	if !ok {
		return Errorf(http.StatusConflict, "URL %q has not been probed", sourceURL)
	}

	options := media.Resolve(info.Streams, kind)
	if len(options) == 0 {
		return Errorf(http.StatusUnprocessableEntity, "no downloadable %s streams", kind)
	}

	option, found := findOption(options, req.Label)
	if !found {
		return Errorf(http.StatusBadRequest, "unknown option label %q", req.Label)
	}

	started := a.Jobs.Start(fetch.Request{
		URL:       info.SourceURL,
		Option:    option,
		Kind:      kind,
		TitleBase: pathutil.SanitizeBase(info.Title, 0),
		WorkDir:   a.Config.WorkDir,
	}, info.Title)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(started); err != nil {
		return fmt.Errorf("writing json response: %w", err)
	}
	return nil
}

func (a *App) JobsHandler(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, a.Jobs.List())
}

func (a *App) JobHandler(w http.ResponseWriter, r *http.Request) error {
	j, ok := a.Jobs.Get(r.PathValue("id"))
	if !ok {
		return Errorf(http.StatusNotFound, "job %q not found", r.PathValue("id"))
	}
	return writeJSON(w, j)
}

func (a *App) CancelHandler(w http.ResponseWriter, r *http.Request) error {
	err := a.Jobs.Cancel(r.PathValue("id"))
	if errors.Is(err, job.ErrNotFound) {
		return Errorf(http.StatusNotFound, "canceling: %w", err)
	}
	if err != nil {
		return Errorf(http.StatusConflict, "canceling: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// FileHandler serves a finished download. Only files directly inside the
// work directory are reachable, and files above the configured size cap are
// refused the way the UI announces them: kept on disk, not streamed.
func (a *App) FileHandler(w http.ResponseWriter, r *http.Request) error {
	name := filepath.Base(r.PathValue("name"))
	if name == "." || name == string(filepath.Separator) {
		return Errorf(http.StatusBadRequest, "bad file name")
	}

	path := filepath.Join(a.Config.WorkDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return Errorf(http.StatusNotFound, "file %q not found", name)
	}
	if a.Config.MaxFileSize > 0 && info.Size() > a.Config.MaxFileSize {
		return Errorf(
			http.StatusRequestEntityTooLarge,
			"file %q (%s) exceeds the direct download limit (%s)",
			name,
			pathutil.FormatSize(info.Size()),
			pathutil.FormatSize(a.Config.MaxFileSize),
		)
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
	return nil
}

// CleanupHandler wipes finished downloads from the work directory. Files of
// unfinished jobs stay put: cleanup is refused while anything is active.
func (a *App) CleanupHandler(w http.ResponseWriter, _ *http.Request) error {
	for _, j := range a.Jobs.List() {
		if !j.Status.Finished() {
			return Errorf(http.StatusConflict, "job %s is still %s", j.ID, j.Status)
		}
	}

	entries, err := os.ReadDir(a.Config.WorkDir)
	if err != nil {
		return fmt.Errorf("reading work dir: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(a.Config.WorkDir, e.Name())); err != nil {
			return fmt.Errorf("removing %q: %w", e.Name(), err)
		}
		removed++
	}

	a.Cache.Clear()

	return writeJSON(w, map[string]int{"removed": removed})
}

// ThumbnailHandler proxies the poster image so the page never hot-links the
// media origin. Responses are size-capped.
func (a *App) ThumbnailHandler(w http.ResponseWriter, r *http.Request) error {
	rawURL := r.URL.Query().Get("url")
	thumbURL, err := urlutil.NormalizeMediaURL(rawURL)
	if err != nil {
		return Errorf(http.StatusBadRequest, "bad thumbnail URL: %w", err)
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, thumbURL, nil)
	if err != nil {
		return fmt.Errorf("building thumbnail request: %w", err)
	}

	resp, err := a.Thumbs.Do(req)
	if err != nil {
		return Errorf(http.StatusBadGateway, "fetching thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Errorf(http.StatusBadGateway, "thumbnail origin returned %s", resp.Status)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, io.LimitReader(resp.Body, maxThumbnailBytes)); err != nil {
		return fmt.Errorf("writing thumbnail: %w", err)
	}
	return nil
}

func findOption(options []media.DownloadOption, label string) (media.DownloadOption, bool) {
	for _, o := range options {
		if o.Label == label {
			return o, true
		}
	}
	return media.DownloadOption{}, false
}

func toJSONOptions(options []media.DownloadOption) []jsonOption {
	out := make([]jsonOption, 0, len(options))
	for _, o := range options {
		out = append(out, jsonOption{
			Label:         o.Label,
			RequiresMerge: o.RequiresMerge,
			Container:     o.Container,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("writing json response: %w", err)
	}
	return nil
}
