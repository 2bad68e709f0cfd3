package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// VideoInfo is the subset of the YouTube oEmbed response used at authoring
// time to prefill lesson metadata.
type VideoInfo struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchVideoInfo looks a video up via the oEmbed endpoint. Best effort:
// callers treat a failure as "no metadata", never as a fatal error.
func FetchVideoInfo(videoURL string) (*VideoInfo, error) {
	client := resty.New().SetTimeout(10 * time.Second)

	var info VideoInfo
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&info).
		Get("https://www.youtube.com/oembed")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("oembed lookup failed, code: %d", resp.StatusCode())
	}

	return &info, nil
}
