package watcher

import (
	"context"
	"time"

	"ewintr.nl/ytwatch/config"
	"ewintr.nl/ytwatch/fetcher"
	"ewintr.nl/ytwatch/model"
	"ewintr.nl/ytwatch/notify"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Searcher interface {
	Search(ctx context.Context, q fetcher.SearchQuery) ([]model.Video, error)
}

type SeenRepository interface {
	Load(ctx context.Context) (model.SeenSet, error)
	Save(ctx context.Context, seen model.SeenSet) error
	Clear(ctx context.Context) error
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) notify.Result
}

// Watcher runs one search-and-notify pass per call to Run. Runs are not
// synchronized with each other: two overlapping runs both read, merge and
// write the seen set, and the last write wins.
type Watcher struct {
	search   config.Search
	searcher Searcher
	seen     SeenRepository
	notifier Notifier
	now      func() time.Time
	logger   *slog.Logger
}

func New(search config.Search, searcher Searcher, seen SeenRepository, notifier Notifier, logger *slog.Logger) *Watcher {
	return &Watcher{
		search:   search,
		searcher: searcher,
		seen:     seen,
		notifier: notifier,
		now:      time.Now,
		logger:   logger,
	}
}

// Run is not cancelled by ctx. Once a notification went out its video must end
// up in the stored seen set, so a caller that goes away mid-run does not
// abort the save.
func (w *Watcher) Run(ctx context.Context) (model.Summary, error) {
	ctx = context.WithoutCancel(ctx)
	logger := w.logger.With(slog.String("run", uuid.New().String()))
	logger.Info("starting search", slog.String("query", w.search.Query), slog.Int("max", w.search.MaxResults))

	videos, err := w.searcher.Search(ctx, fetcher.SearchQuery{
		Query:      w.search.Query,
		MaxResults: w.search.MaxResults,
	})
	if err != nil {
		logger.Error("search failed", slog.String("error", err.Error()))
		return model.Summary{}, err
	}
	logger.Info("fetched videos", slog.Int("count", len(videos)))

	seen, err := w.seen.Load(ctx)
	if err != nil {
		logger.Warn("could not load seen videos, continuing with empty set", slog.String("error", err.Error()))
	}
	if seen == nil {
		seen = model.NewSeenSet()
	}
	logger.Info("loaded seen videos", slog.Int("count", seen.Len()))

	now := w.now()
	logger.Debug("newness threshold", slog.Time("threshold", now.Add(-w.search.NewnessWindow)))

	summary := model.Summary{VideosFound: len(videos)}
	found := model.NewSeenSet()
	for _, video := range videos {
		if seen.Has(video.YoutubeID) || found.Has(video.YoutubeID) {
			continue
		}

		category := model.Classify(video.PublishedAt, now, w.search.NewnessWindow)
		switch category {
		case model.CategoryBrandNew:
			summary.NewVideos++
		case model.CategoryNewlyPopular:
			summary.PopularVideos++
		}

		videoLogger := logger.With(slog.String("video", string(video.YoutubeID)), slog.String("category", string(category)))
		videoLogger.Info("found unseen video", slog.String("title", video.Title), slog.String("channel", video.ChannelTitle), slog.Time("published", video.PublishedAt))

		res := w.notifier.Notify(ctx, notify.Notification{Video: video, Category: category})
		switch res.Status {
		case notify.StatusFailed:
			videoLogger.Error("notification failed", slog.String("error", res.Err().Error()))
		case notify.StatusSkipped:
			videoLogger.Debug("notification skipped")
		default:
			videoLogger.Info("notification sent")
		}

		found.Add(video.YoutubeID)
	}

	logger.Info("classified videos", slog.Int("brandnew", summary.NewVideos), slog.Int("popular", summary.PopularVideos))
	if found.Len() == 0 {
		logger.Info("search completed, nothing new")
		return summary, nil
	}

	seen.Merge(found)
	if err := w.seen.Save(ctx, seen); err != nil {
		logger.Error("could not save seen videos", slog.String("error", err.Error()))
		return model.Summary{}, err
	}
	logger.Info("search completed", slog.Int("saved", found.Len()), slog.Int("total", seen.Len()))

	return summary, nil
}

func (w *Watcher) Clear(ctx context.Context) error {
	if err := w.seen.Clear(ctx); err != nil {
		w.logger.Error("could not clear seen videos", slog.String("error", err.Error()))
		return err
	}
	w.logger.Info("cleared seen videos")

	return nil
}
