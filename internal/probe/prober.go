package probe

import (
	"context"
	"errors"

	"github.com/avdeyev/vidpull/internal/media"
)

// ErrNoMedia indicates the extractor returned no usable information for the
// URL (private, removed, or unsupported).
var ErrNoMedia = errors.New("no media information found")

// Prober inspects a URL and reports the raw stream list and metadata. The
// returned stream list is already deduplicated by raw identifier by the
// extractor.
type Prober interface {
	Probe(ctx context.Context, url string) (*media.MediaInfo, error)
	ProbePlaylist(ctx context.Context, url string) (*Playlist, error)
}

// Playlist is the flat view of a multi-item URL. Entries are probed
// individually on demand.
type Playlist struct {
	Title   string          `json:"title"`
	Entries []PlaylistEntry `json:"entries"`
}

type PlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
