package model

import (
	"fmt"
	"time"
)

type YoutubeVideoID string

type Video struct {
	YoutubeID    YoutubeVideoID
	Title        string
	ChannelTitle string
	PublishedAt  time.Time
}

func (v Video) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.YoutubeID)
}

type Category string

const (
	CategoryBrandNew     Category = "✨ Brand New"
	CategoryNewlyPopular Category = "📈 Newly Popular"
)

// Classify puts a video published at or after now-window in the brand new
// category. Anything older that still shows up unseen is newly popular.
func Classify(publishedAt, now time.Time, window time.Duration) Category {
	if !publishedAt.Before(now.Add(-window)) {
		return CategoryBrandNew
	}

	return CategoryNewlyPopular
}

// Summary is the outcome of a single search run.
type Summary struct {
	VideosFound   int `json:"videosFound"`
	NewVideos     int `json:"newVideos"`
	PopularVideos int `json:"popularVideos"`
}
