package fetch_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/avdeyev/vidpull/internal/fetch"
	"github.com/avdeyev/vidpull/internal/testutil"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		line     string
		expected fetch.Event
		skip     bool
	}{
		{
			name: "running progress",
			line: "[download]  42.1% of 10.00MiB at 1.20MiB/s ETA 00:05",
			expected: fetch.Event{
				Kind:      fetch.EventProgress,
				Percent:   42.1,
				TotalSize: "10.00MiB",
				Speed:     "1.20MiB/s",
				ETA:       "00:05",
			},
		},
		{
			name: "approximate total size",
			line: "[download] 100.0% of ~104.86MiB at 4.40MiB/s ETA 00:00",
			expected: fetch.Event{
				Kind:      fetch.EventProgress,
				Percent:   100,
				TotalSize: "104.86MiB",
				Speed:     "4.40MiB/s",
				ETA:       "00:00",
			},
		},
		{
			name: "finished line without speed",
			line: "[download] 100% of 10.00MiB in 00:10",
			expected: fetch.Event{
				Kind:      fetch.EventProgress,
				Percent:   100,
				TotalSize: "10.00MiB",
			},
		},
		{
			name: "percent only",
			line: "[download]   0.0%",
			expected: fetch.Event{
				Kind: fetch.EventProgress,
			},
		},
		{
			name: "download destination",
			line: "[download] Destination: /tmp/work/Title_137.mp4",
			expected: fetch.Event{
				Kind: fetch.EventDestination,
				Path: "/tmp/work/Title_137.mp4",
			},
		},
		{
			name: "extract audio destination",
			line: "[ExtractAudio] Destination: /tmp/work/Title_140.mp3",
			expected: fetch.Event{
				Kind: fetch.EventDestination,
				Path: "/tmp/work/Title_140.mp3",
			},
		},
		{
			name: "merger target",
			line: `[Merger] Merging formats into "/tmp/work/Title_137.mp4"`,
			expected: fetch.Event{
				Kind: fetch.EventMerged,
				Path: "/tmp/work/Title_137.mp4",
			},
		},
		{name: "unrelated line", line: "[youtube] abc123: Downloading webpage", skip: true},
		{name: "empty line", line: "", skip: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := fetch.ParseLine(tc.line)
			if tc.skip {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("event mismatch %s", testutil.PrintWantGot(diff))
			}
		})
	}
}
