package media

import (
	"fmt"
	"strings"
)

// OutputKind selects the shape of the final file.
type OutputKind int

const (
	// KindVideo produces a muxed video container (mp4).
	KindVideo OutputKind = iota
	// KindAudio produces an extracted audio file (mp3).
	KindAudio
)

const (
	// VideoContainer is the canonical container for KindVideo output.
	VideoContainer = "mp4"
	// AudioContainer is the canonical container for KindAudio output.
	AudioContainer = "mp3"
)

func (k OutputKind) String() string {
	switch k {
	case KindVideo:
		return VideoContainer
	case KindAudio:
		return AudioContainer
	default:
		return fmt.Sprintf("OutputKind(%d)", int(k))
	}
}

// Container returns the canonical container for the kind.
func (k OutputKind) Container() string {
	if k == KindAudio {
		return AudioContainer
	}
	return VideoContainer
}

// ParseOutputKind converts user input ("mp4", "video", "mp3", "audio") into
// an OutputKind.
func ParseOutputKind(s string) (OutputKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp4", "video":
		return KindVideo, nil
	case "mp3", "audio":
		return KindAudio, nil
	default:
		return 0, fmt.Errorf("unknown output kind %q", s)
	}
}

// DownloadOption is one user-selectable download entry resolved from a probe
// result. Selector is a yt-dlp format expression consumed verbatim by the
// fetcher. Label doubles as the presentation layer's lookup key, so labels
// are unique within one resolved list.
// Height carries the backing stream's video height in pixels so callers can
// match options without parsing labels; it is zero for the recommended
// entries and for audio options.
type DownloadOption struct {
	Label         string
	Selector      string
	RequiresMerge bool
	Container     string
	Height        int
}
