package scores

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=r2S1I_ien6A", "r2S1I_ien6A"},
		{"watch URL without www", "https://youtube.com/watch?v=r2S1I_ien6A", "r2S1I_ien6A"},
		{"share link", "https://youtu.be/_CI-0E_jses", "_CI-0E_jses"},
		{"share link with query", "https://youtu.be/_CI-0E_jses?t=42", "_CI-0E_jses"},
		{"embed URL", "https://www.youtube.com/embed/cb2w2m1JmCY", "cb2w2m1JmCY"},
		{"shorts URL", "https://www.youtube.com/shorts/abc123DEF45", "abc123DEF45"},
		{"live URL", "https://www.youtube.com/live/abc123DEF45", "abc123DEF45"},
		{"mobile host", "https://m.youtube.com/watch?v=r2S1I_ien6A", "r2S1I_ien6A"},
		{"music host", "https://music.youtube.com/watch?v=r2S1I_ien6A", "r2S1I_ien6A"},
		{"watch URL with playlist param", "https://www.youtube.com/watch?v=r2S1I_ien6A&list=PL123", "r2S1I_ien6A"},
		{"unrelated host", "https://vimeo.com/123456", ""},
		{"channel path", "https://www.youtube.com/@someband", ""},
		{"empty", "", ""},
		{"garbage", "://not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractYouTubeID(tt.url))
		})
	}
}
