package pathutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// SanitizeBase turns a media title into a safe filename base. Length 0
// applies the default cap.
func SanitizeBase(title string, length int) string {
	const maxBaseLength = 80

	if length == 0 {
		length = maxBaseLength
	}

	slug.MaxLength = length
	slug.Lowercase = false

	base := slug.Make(title)
	if base == "" {
		return "download"
	}
	return base
}

// FormatSize renders a byte count for option labels and the UI.
func FormatSize(bytes int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
		gib = 1024 * mib
	)
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.2fGiB", float64(bytes)/gib)
	case bytes >= mib:
		return fmt.Sprintf("%.2fMiB", float64(bytes)/mib)
	case bytes >= kib:
		return fmt.Sprintf("%.1fKiB", float64(bytes)/kib)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// FormatDuration renders a media duration without zero units ("1h3s", "2m").
func FormatDuration(d time.Duration) string {
	s := d.Truncate(time.Second).String()
	s = strings.ReplaceAll(s, "m0s", "m")
	s = strings.ReplaceAll(s, "h0m", "h")
	return s
}
