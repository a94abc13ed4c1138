package scores

import (
	"net/url"
	"strings"
)

// ExtractYouTubeID pulls the video ID out of the URL forms members paste:
// watch URLs, share links and embeds. Returns "" when nothing matches.
func ExtractYouTubeID(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")

	switch host {
	case "youtu.be":
		// https://youtu.be/<id>
		return strings.Trim(strings.TrimPrefix(u.Path, "/"), "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		// https://www.youtube.com/watch?v=<id>
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		// https://www.youtube.com/embed/<id> and /shorts/<id>
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				rest := strings.TrimPrefix(u.Path, prefix)
				if idx := strings.Index(rest, "/"); idx >= 0 {
					rest = rest[:idx]
				}
				return rest
			}
		}
	}

	return ""
}
