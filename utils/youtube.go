package utils

import (
	"net/url"
	"regexp"
)

// Accepted YouTube link shapes. The capture is the candidate video id.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&?/]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&?/]+)`),
	regexp.MustCompile(`youtu\.be/([^&?/]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&?/]+)`),
}

// ExtractYouTubeID pulls the 11-character video id out of a watch, short,
// shorts or embed link. Any other shape, or an id of the wrong length,
// returns the empty string.
func ExtractYouTubeID(raw string) string {
	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil {
			if len(match[1]) == 11 {
				return match[1]
			}
		}
	}
	return ""
}

// YouTubeEmbedURL canonicalizes a video link into its embeddable form with
// playback parameters (no related videos, minimal branding, inline playback,
// JS API). When origin is set it is bound into the URL. Unrecognized input
// is returned unchanged; it might be a different, still-embeddable source.
func YouTubeEmbedURL(raw, origin string) string {
	if raw == "" {
		return ""
	}
	videoID := ExtractYouTubeID(raw)
	if videoID == "" {
		return raw
	}

	embed := "https://www.youtube.com/embed/" + videoID +
		"?rel=0&modestbranding=1&playsinline=1&enablejsapi=1"
	if origin != "" {
		embed += "&origin=" + url.QueryEscape(origin)
	}
	return embed
}
