package media

import (
	"sort"
)

// BestSelector requests the best video paired with the best audio, with a
// muxed best-quality fallback when separate tracks are not available.
const BestSelector = "bestvideo+bestaudio/best"

// directVideoContainers are the containers surfaced as direct (no-merge)
// video options: the canonical container plus the open alternative.
var directVideoContainers = map[string]bool{
	VideoContainer: true,
	"webm":         true,
}

// Resolve turns the probed stream list into an ordered, deduplicated list of
// selectable download options for the requested output kind. It is a pure
// function: no I/O, the input slice is not mutated, and identical inputs
// produce identical output. An empty result means no stream qualifies for
// the kind and is a normal outcome, not an error.
func Resolve(streams []Stream, kind OutputKind) []DownloadOption {
	usable := make([]Stream, 0, len(streams))
	for _, s := range streams {
		if Classify(s) != ClassUnusable {
			usable = append(usable, s)
		}
	}

	var options []DownloadOption
	switch kind {
	case KindAudio:
		options = resolveAudio(usable)
	default:
		options = resolveVideo(usable)
	}

	return disambiguateLabels(options)
}

func resolveVideo(streams []Stream) []DownloadOption {
	videoBearing := 0
	for _, s := range streams {
		if s.HasVideo() {
			videoBearing++
		}
	}
	if videoBearing == 0 {
		return nil
	}

	ranked := make([]Stream, len(streams))
	copy(ranked, streams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return videoKey(ranked[i]).less(videoKey(ranked[j]))
	})

	// The recommended entry always comes first. Muxed streams are not
	// surfaced individually: they back the selector's "/best" fallback.
	options := []DownloadOption{{
		Label:         "Best video + audio (Recommended)",
		Selector:      BestSelector,
		RequiresMerge: true,
		Container:     VideoContainer,
	}}

	// One merge option per distinct height among canonical-container
	// video-only streams. First after ranking wins; later streams at the
	// same height are suppressed.
	seenHeights := make(map[int]bool)
	consumed := make(map[string]bool)
	for _, s := range ranked {
		if Classify(s) != ClassVideoOnly || s.Container != VideoContainer {
			continue
		}
		if seenHeights[s.Height] {
			continue
		}
		seenHeights[s.Height] = true
		consumed[s.ID] = true
		options = append(options, DownloadOption{
			Label:         videoLabel(s) + " (Merged)",
			Selector:      s.ID + "+bestaudio",
			RequiresMerge: true,
			Container:     VideoContainer,
			Height:        s.Height,
		})
	}

	for _, s := range ranked {
		if Classify(s) != ClassVideoOnly || consumed[s.ID] {
			continue
		}
		if !directVideoContainers[s.Container] {
			continue
		}
		options = append(options, DownloadOption{
			Label:     videoLabel(s),
			Selector:  s.ID,
			Container: s.Container,
			Height:    s.Height,
		})
	}

	return options
}

func resolveAudio(streams []Stream) []DownloadOption {
	audioBearing := make([]Stream, 0, len(streams))
	for _, s := range streams {
		if s.HasAudio() {
			audioBearing = append(audioBearing, s)
		}
	}
	if len(audioBearing) == 0 {
		return nil
	}

	sort.SliceStable(audioBearing, func(i, j int) bool {
		return audioBearing[i].AudioBitrate > audioBearing[j].AudioBitrate
	})

	// The best audio-bearing stream, muxed or not; extraction to the
	// canonical container happens downstream either way.
	best := audioBearing[0]
	options := []DownloadOption{{
		Label:     audioLabel(best) + " (Recommended)",
		Selector:  best.ID,
		Container: AudioContainer,
	}}

	// Muxed streams are excluded here: extracting their audio goes through
	// the same post-processing as the recommended entry and would only
	// duplicate it.
	for _, s := range audioBearing {
		if Classify(s) != ClassAudioOnly {
			continue
		}
		options = append(options, DownloadOption{
			Label:     audioLabel(s),
			Selector:  s.ID,
			Container: AudioContainer,
		})
	}

	return options
}

// rankKey orders streams best-first. Ties keep probe order (stable sort), so
// resolution is reproducible independent of map iteration or hashing.
type rankKey [3]float64

func (k rankKey) less(other rankKey) bool {
	for i := range k {
		if k[i] != other[i] {
			return k[i] > other[i]
		}
	}
	return false
}

func videoKey(s Stream) rankKey {
	return rankKey{float64(s.Height), s.FrameRate, s.TotalBitrate}
}

// disambiguateLabels appends the selector to every member of a colliding
// label group. Selectors are unique per option, so the result is collision
// free and stays usable as the UI's reverse-lookup key.
func disambiguateLabels(options []DownloadOption) []DownloadOption {
	counts := make(map[string]int, len(options))
	for _, o := range options {
		counts[o.Label]++
	}
	for i, o := range options {
		if counts[o.Label] > 1 {
			options[i].Label = o.Label + " [" + o.Selector + "]"
		}
	}
	return options
}
