package media

import (
	"fmt"
	"strings"
)

func videoLabel(s Stream) string {
	parts := []string{resolutionText(s), s.Container}
	if s.VideoCodec != "" && s.VideoCodec != NoCodec {
		parts = append(parts, s.VideoCodec)
	}
	return strings.Join(parts, " ")
}

func audioLabel(s Stream) string {
	parts := []string{}
	if s.AudioCodec != "" && s.AudioCodec != NoCodec {
		parts = append(parts, s.AudioCodec)
	}
	if s.AudioBitrate > 0 {
		parts = append(parts, fmt.Sprintf("%dkbps", int(s.AudioBitrate)))
	}
	if len(parts) == 0 {
		return "audio " + s.ID
	}
	return strings.Join(parts, " ")
}

func resolutionText(s Stream) string {
	if s.Resolution != "" {
		return s.Resolution
	}
	if s.Height > 0 {
		return fmt.Sprintf("%dp", s.Height)
	}
	return "unknown resolution"
}
