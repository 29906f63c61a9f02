package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ewintr.nl/ytwatch/model"
	"golang.org/x/exp/slog"
)

const maxDetailSize = 4096

type Notification struct {
	Video    model.Video
	Category model.Category
}

type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result reports what happened to a single notification. Failures are
// carried here instead of being returned as errors, so that one bad webhook
// call never stops the caller.
type Result struct {
	Status     Status
	StatusCode int
	Detail     string
}

// Err returns a *NotificationError for failed results and nil otherwise.
func (r Result) Err() error {
	if r.Status != StatusFailed {
		return nil
	}

	return &NotificationError{StatusCode: r.StatusCode, Detail: r.Detail}
}

type NotificationError struct {
	StatusCode int
	Detail     string
}

func (e *NotificationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("slack notification failed: %s", e.Detail)
	}
	return fmt.Sprintf("slack notification failed: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

type SlackInfo struct {
	WebhookURL string
	Label      string
	Timeout    time.Duration
}

type Slack struct {
	webhookURL string
	label      string
	client     *http.Client
	logger     *slog.Logger
}

func NewSlack(info SlackInfo, logger *slog.Logger) *Slack {
	return &Slack{
		webhookURL: info.WebhookURL,
		label:      info.Label,
		client:     &http.Client{Timeout: info.Timeout},
		logger:     logger,
	}
}

func (s *Slack) Notify(ctx context.Context, n Notification) Result {
	if s.webhookURL == "" {
		s.logger.Debug("slack webhook not configured, skipping notification", slog.String("video", string(n.Video.YoutubeID)))
		return Result{Status: StatusSkipped}
	}

	body, err := json.Marshal(s.message(n))
	if err != nil {
		return Result{Status: StatusFailed, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return Result{Status: StatusFailed, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Debug("sending slack notification", slog.String("video", string(n.Video.YoutubeID)), slog.String("category", string(n.Category)))
	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Status: StatusFailed, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailSize))
		return Result{Status: StatusFailed, StatusCode: resp.StatusCode, Detail: string(detail)}
	}

	return Result{Status: StatusSent, StatusCode: resp.StatusCode}
}

func (s *Slack) message(n Notification) Message {
	heading := fmt.Sprintf("%s YouTube Video", n.Category)
	if s.label != "" {
		heading = fmt.Sprintf("%s %s YouTube Video", n.Category, s.label)
	}

	return Message{
		Text: fmt.Sprintf("%s: %s", heading, n.Video.Title),
		Blocks: []Block{
			{
				Type: "section",
				Text: &Text{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*%s*\n*%s*", heading, n.Video.Title),
				},
			},
			{
				Type: "section",
				Text: &Text{
					Type: "mrkdwn",
					Text: fmt.Sprintf("📅 Published: %s by %s", n.Video.PublishedAt.UTC().Format("2006-01-02"), n.Video.ChannelTitle),
				},
			},
			{
				Type: "actions",
				Elements: []Element{
					{
						Type: "button",
						Text: &Text{
							Type:  "plain_text",
							Text:  "Watch Video",
							Emoji: true,
						},
						URL: n.Video.URL(),
					},
				},
			},
		},
	}
}
