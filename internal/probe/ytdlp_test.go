package probe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/vidpull/internal/media"
	"github.com/avdeyev/vidpull/internal/probe"
	"github.com/avdeyev/vidpull/internal/testutil"
)

func TestYtdlpProber_Probe(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{Stdout: []byte(testutil.ProbeDumpJSON)}
	prober := &probe.YtdlpProber{Runner: runner}

	info, err := prober.Probe(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)

	assert.Equal(t, "Test video", info.Title)
	assert.Equal(t, "https://i.example.com/thumb.jpg", info.ThumbnailURL)
	assert.Equal(t, 213500*time.Millisecond, info.Duration)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", info.SourceURL)

	want := []media.Stream{
		{
			ID:           "18",
			Container:    "mp4",
			VideoCodec:   "avc1.42001E",
			AudioCodec:   "mp4a.40.2",
			Resolution:   "640x360",
			Height:       360,
			FrameRate:    30,
			AudioBitrate: 96,
			TotalBitrate: 500,
			Size:         10485760,
		},
		{
			ID:           "137",
			Container:    "mp4",
			VideoCodec:   "avc1.640028",
			AudioCodec:   "none",
			Resolution:   "1920x1080",
			Height:       1080,
			FrameRate:    30,
			TotalBitrate: 4400,
			Size:         104857600,
		},
		{
			ID:           "140",
			Container:    "m4a",
			VideoCodec:   "none",
			AudioCodec:   "mp4a.40.2",
			AudioBitrate: 128,
			TotalBitrate: 130,
		},
	}
	if diff := cmp.Diff(want, info.Streams); diff != "" {
		t.Errorf("streams mismatch %s", testutil.PrintWantGot(diff))
	}

	args := runner.LastCall()
	assert.Contains(t, args, "--dump-json")
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "https://youtu.be/abc123")
}

func TestYtdlpProber_Probe_HeightFromResolution(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{Stdout: []byte(`{
		"title": "t",
		"formats": [
			{"format_id": "1", "ext": "mp4", "vcodec": "vp9", "acodec": "none", "resolution": "1280x720"}
		]
	}`)}
	prober := &probe.YtdlpProber{Runner: runner}

	info, err := prober.Probe(context.Background(), "https://example.com/v")
	require.NoError(t, err)
	require.Len(t, info.Streams, 1)
	assert.Equal(t, 720, info.Streams[0].Height)
	// webpage_url absent: fall back to the requested URL.
	assert.Equal(t, "https://example.com/v", info.SourceURL)
}

func TestYtdlpProber_Probe_EmptyOutput(t *testing.T) {
	t.Parallel()

	prober := &probe.YtdlpProber{Runner: &testutil.FakeRunner{}}
	_, err := prober.Probe(context.Background(), "https://example.com/v")
	assert.ErrorIs(t, err, probe.ErrNoMedia)
}

func TestYtdlpProber_Probe_RunnerError(t *testing.T) {
	t.Parallel()

	bang := errors.New("extractor exploded")
	prober := &probe.YtdlpProber{Runner: &testutil.FakeRunner{Err: bang}}
	_, err := prober.Probe(context.Background(), "https://example.com/v")
	assert.ErrorIs(t, err, bang)
}

func TestYtdlpProber_ProbePlaylist(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{Stdout: []byte(testutil.PlaylistDumpJSON)}
	prober := &probe.YtdlpProber{Runner: runner}

	playlist, err := prober.ProbePlaylist(context.Background(), "https://example.com/list")
	require.NoError(t, err)

	assert.Equal(t, "Test playlist", playlist.Title)
	// The URL-less entry is dropped.
	require.Len(t, playlist.Entries, 2)
	assert.Equal(t, "First", playlist.Entries[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=def456", playlist.Entries[1].URL)

	assert.Contains(t, runner.LastCall(), "--flat-playlist")
}

func TestCache(t *testing.T) {
	t.Parallel()

	cache := probe.NewCache()

	_, ok := cache.Get("https://example.com/a")
	assert.False(t, ok)

	first := &media.MediaInfo{SourceURL: "https://example.com/a", Title: "A"}
	cache.Put(first)

	got, ok := cache.Get("https://example.com/a")
	require.True(t, ok)
	assert.Equal(t, first, got)

	// A new probe replaces the previous entry entirely.
	cache.Put(&media.MediaInfo{SourceURL: "https://example.com/b", Title: "B"})
	_, ok = cache.Get("https://example.com/a")
	assert.False(t, ok)

	cache.Clear()
	_, ok = cache.Get("https://example.com/b")
	assert.False(t, ok)
}
