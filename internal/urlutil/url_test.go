package urlutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/vidpull/internal/urlutil"
)

func TestNormalizeMediaURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "plain https URL",
			raw:      "https://www.youtube.com/watch?v=abc123",
			expected: "https://www.youtube.com/watch?v=abc123",
		},
		{
			name:     "scheme-less input",
			raw:      "youtu.be/abc123",
			expected: "https://youtu.be/abc123",
		},
		{
			name:     "surrounding whitespace",
			raw:      "  https://vimeo.com/12345  ",
			expected: "https://vimeo.com/12345",
		},
		{name: "empty", raw: "", wantErr: true},
		{name: "bad scheme", raw: "ftp://example.com/file", wantErr: true},
		{name: "no host", raw: "https:///watch", wantErr: true},
		{name: "bare word", raw: "nonsense", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := urlutil.NormalizeMediaURL(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatServerAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://localhost:8080", urlutil.FormatServerAddress(":8080"))
	assert.Equal(t, "http://127.0.0.1:9000", urlutil.FormatServerAddress("127.0.0.1:9000"))
	assert.Equal(t, "http://localhost", urlutil.FormatServerAddress("localhost"))
}
