package media

import (
	"time"
)

// NoCodec is the probe's marker for an absent track, as reported by yt-dlp.
const NoCodec = "none"

// Stream is one encoding of the source media as reported by the prober.
// Zero values mean the prober did not report the attribute.
type Stream struct {
	ID           string
	Container    string
	VideoCodec   string
	AudioCodec   string
	Resolution   string
	Height       int
	FrameRate    float64
	AudioBitrate float64
	TotalBitrate float64
	Size         int64
}

func (s Stream) HasVideo() bool {
	return s.VideoCodec != "" && s.VideoCodec != NoCodec
}

func (s Stream) HasAudio() bool {
	return s.AudioCodec != "" && s.AudioCodec != NoCodec
}

// Class partitions streams by which tracks they carry.
type Class int

const (
	ClassUnusable Class = iota
	ClassMuxed
	ClassVideoOnly
	ClassAudioOnly
)

func (c Class) String() string {
	switch c {
	case ClassMuxed:
		return "muxed"
	case ClassVideoOnly:
		return "video-only"
	case ClassAudioOnly:
		return "audio-only"
	default:
		return "unusable"
	}
}

// Classify assigns a stream to exactly one class. Streams reporting neither
// track are unusable and dropped before resolution.
func Classify(s Stream) Class {
	switch {
	case s.HasVideo() && s.HasAudio():
		return ClassMuxed
	case s.HasVideo():
		return ClassVideoOnly
	case s.HasAudio():
		return ClassAudioOnly
	default:
		return ClassUnusable
	}
}

// MediaInfo is the probe result for one playable item. It is immutable after
// creation and cached keyed by SourceURL until the next probe.
type MediaInfo struct {
	Title        string
	ThumbnailURL string
	Duration     time.Duration
	SourceURL    string
	Streams      []Stream
}
