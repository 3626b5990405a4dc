package testutil

import "fmt"

// PrintWantGot formats a cmp.Diff for test failure messages.
func PrintWantGot(diff string) string {
	return fmt.Sprintf("(-want, +got): %s", diff)
}

// ProbeDumpJSON is a trimmed yt-dlp --dump-json payload with a muxed
// stream, a video-only stream, and an audio-only stream.
const ProbeDumpJSON = `{
  "title": "Test video",
  "thumbnail": "https://i.example.com/thumb.jpg",
  "duration": 213.5,
  "webpage_url": "https://www.youtube.com/watch?v=abc123",
  "formats": [
    {
      "format_id": "18",
      "ext": "mp4",
      "vcodec": "avc1.42001E",
      "acodec": "mp4a.40.2",
      "resolution": "640x360",
      "height": 360,
      "fps": 30,
      "abr": 96,
      "tbr": 500,
      "filesize": 10485760
    },
    {
      "format_id": "137",
      "ext": "mp4",
      "vcodec": "avc1.640028",
      "acodec": "none",
      "resolution": "1920x1080",
      "height": 1080,
      "fps": 30,
      "tbr": 4400,
      "filesize_approx": 104857600
    },
    {
      "format_id": "140",
      "ext": "m4a",
      "vcodec": "none",
      "acodec": "mp4a.40.2",
      "resolution": "audio only",
      "abr": 128,
      "tbr": 130
    }
  ]
}`

// PlaylistDumpJSON is a trimmed yt-dlp --flat-playlist payload.
const PlaylistDumpJSON = `{
  "title": "Test playlist",
  "entries": [
    {"id": "abc123", "title": "First", "url": "https://www.youtube.com/watch?v=abc123"},
    {"id": "def456", "title": "Second", "url": "https://www.youtube.com/watch?v=def456"},
    {"id": "", "title": "Hidden", "url": ""}
  ]
}`
