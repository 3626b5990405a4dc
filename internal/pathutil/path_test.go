package pathutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avdeyev/vidpull/internal/pathutil"
)

//nolint:paralleltest
func TestSanitizeBase(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		length   int
		expected string
	}{
		{
			name:     "title with reserved characters",
			title:    `My Video: The "Best" Part? <2024>`,
			length:   0,
			expected: "My-Video-The-Best-Part-2024",
		},
		{
			name:     "accented title",
			title:    "Titre de la vidéo — été",
			length:   0,
			expected: "Titre-de-la-video-ete",
		},
		{
			name:     "truncated to length",
			title:    "A fairly long video title",
			length:   8,
			expected: "A-fairly",
		},
		{
			name:     "empty title falls back",
			title:    "??",
			length:   0,
			expected: "download",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pathutil.SanitizeBase(tc.title, tc.length))
		})
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "bytes", bytes: 512, expected: "512B"},
		{name: "kibibytes", bytes: 4 * 1024, expected: "4.0KiB"},
		{name: "mebibytes", bytes: 10 * 1024 * 1024, expected: "10.00MiB"},
		{name: "gibibytes", bytes: 3 * 1024 * 1024 * 1024, expected: "3.00GiB"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, pathutil.FormatSize(tc.bytes))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		dur      time.Duration
		expected string
	}{
		{name: "seconds", dur: 3 * time.Second, expected: "3s"},
		{name: "minutes", dur: 2 * time.Minute, expected: "2m"},
		{name: "hours and seconds", dur: time.Hour + 3*time.Second, expected: "1h3s"},
		{name: "full", dur: time.Hour + 2*time.Minute + 3*time.Second, expected: "1h2m3s"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, pathutil.FormatDuration(tc.dur))
		})
	}
}
