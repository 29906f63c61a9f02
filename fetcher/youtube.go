package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ewintr.nl/ytwatch/model"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

type SearchQuery struct {
	Query      string
	MaxResults int
}

type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

// Search returns the most recent videos matching the query, newest first, in
// the order the API returned them.
func (y *Youtube) Search(ctx context.Context, q SearchQuery) ([]model.Video, error) {
	if q.Query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if q.MaxResults <= 0 {
		return nil, fmt.Errorf("max results must be positive, got %d", q.MaxResults)
	}

	call := y.Client.Search.
		List([]string{"snippet"}).
		Q(q.Query).
		Type("video").
		Order("date").
		MaxResults(int64(q.MaxResults)).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, classifyError(err)
	}
	if response.Items == nil {
		return nil, &MalformedResponseError{Reason: "response has no items list"}
	}

	videos := make([]model.Video, 0, len(response.Items))
	for i, item := range response.Items {
		if item == nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("item %d is null", i)}
		}
		if item.Id == nil || item.Id.VideoId == "" {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("item %d has no video id", i)}
		}
		if item.Snippet == nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("item %d has no snippet", i)}
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("item %d has invalid publish date %q", i, item.Snippet.PublishedAt), Err: err}
		}

		videos = append(videos, model.Video{
			YoutubeID:    model.YoutubeVideoID(item.Id.VideoId),
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
		})
	}

	return videos, nil
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{
			StatusCode: apiErr.Code,
			Status:     http.StatusText(apiErr.Code),
			Message:    apiErr.Message,
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &MalformedResponseError{Reason: "could not decode response", Err: err}
	}

	return fmt.Errorf("youtube search failed: %w", err)
}
