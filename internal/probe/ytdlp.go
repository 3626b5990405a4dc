package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avdeyev/vidpull/internal/exec"
	"github.com/avdeyev/vidpull/internal/media"
)

// YtdlpProber extracts media information by running the yt-dlp binary with
// --dump-json and parsing its output.
type YtdlpProber struct {
	Runner exec.Runner
}

type jsonDump struct {
	Title      string       `json:"title"`
	Thumbnail  string       `json:"thumbnail"`
	Duration   float64      `json:"duration"`
	WebpageURL string       `json:"webpage_url"`
	Formats    []jsonFormat `json:"formats"`
}

type jsonFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	VideoCodec     string   `json:"vcodec"`
	AudioCodec     string   `json:"acodec"`
	Resolution     string   `json:"resolution"`
	Height         *int     `json:"height"`
	FrameRate      *float64 `json:"fps"`
	AudioBitrate   *float64 `json:"abr"`
	TotalBitrate   *float64 `json:"tbr"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
}

type jsonPlaylist struct {
	Title   string `json:"title"`
	Entries []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"entries"`
}

func (p *YtdlpProber) Probe(ctx context.Context, url string) (*media.MediaInfo, error) {
	out, err := p.runQuiet(
		ctx,
		"--dump-json",
		"--no-playlist",
		"--skip-download",
		"--retries", "3",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("dumping media info: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoMedia
	}

	var dump jsonDump
	if err := json.Unmarshal(out, &dump); err != nil {
		return nil, fmt.Errorf("parsing info dump: %w", err)
	}

	streams := make([]media.Stream, 0, len(dump.Formats))
	for _, f := range dump.Formats {
		if f.FormatID == "" {
			continue
		}
		streams = append(streams, toStream(f))
	}

	sourceURL := dump.WebpageURL
	if sourceURL == "" {
		sourceURL = url
	}

	return &media.MediaInfo{
		Title:        dump.Title,
		ThumbnailURL: dump.Thumbnail,
		Duration:     time.Duration(dump.Duration * float64(time.Second)),
		SourceURL:    sourceURL,
		Streams:      streams,
	}, nil
}

func (p *YtdlpProber) ProbePlaylist(ctx context.Context, url string) (*Playlist, error) {
	out, err := p.runQuiet(
		ctx,
		"--dump-single-json",
		"--flat-playlist",
		"--retries", "3",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("dumping playlist info: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoMedia
	}

	var dump jsonPlaylist
	if err := json.Unmarshal(out, &dump); err != nil {
		return nil, fmt.Errorf("parsing playlist dump: %w", err)
	}

	playlist := &Playlist{Title: dump.Title}
	for _, e := range dump.Entries {
		if e.URL == "" {
			continue
		}
		playlist.Entries = append(playlist.Entries, PlaylistEntry{
			ID:    e.ID,
			Title: e.Title,
			URL:   e.URL,
		})
	}

	return playlist, nil
}

func (p *YtdlpProber) runQuiet(ctx context.Context, args ...string) ([]byte, error) {
	result, err := p.Runner.RunWith(ctx, []exec.Option{exec.WithQuiet()}, args...)
	if err != nil {
		return nil, err
	}
	return result.Stdout, nil
}

func toStream(f jsonFormat) media.Stream {
	s := media.Stream{
		ID:         f.FormatID,
		Container:  f.Ext,
		VideoCodec: f.VideoCodec,
		AudioCodec: f.AudioCodec,
	}

	// "audio only" is yt-dlp's placeholder, not a real resolution.
	if f.Resolution != "" && f.Resolution != "audio only" {
		s.Resolution = f.Resolution
	}
	if f.Height != nil {
		s.Height = *f.Height
	} else if s.Resolution != "" {
		s.Height = heightFromResolution(s.Resolution)
	}
	if f.FrameRate != nil {
		s.FrameRate = *f.FrameRate
	}
	if f.AudioBitrate != nil {
		s.AudioBitrate = *f.AudioBitrate
	}
	if f.TotalBitrate != nil {
		s.TotalBitrate = *f.TotalBitrate
	}
	if f.Filesize != nil {
		s.Size = *f.Filesize
	} else if f.FilesizeApprox != nil {
		s.Size = *f.FilesizeApprox
	}

	return s
}

func heightFromResolution(resolution string) int {
	_, rest, ok := strings.Cut(resolution, "x")
	if !ok {
		return 0
	}
	height, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return height
}
