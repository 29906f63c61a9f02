package config_test

import (
	"testing"
	"time"

	"ewintr.nl/ytwatch/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func lookup(env map[string]string) config.LookupFunc {
	return func(name string) (string, bool) {
		val, ok := env[name]
		return val, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(lookup(map[string]string{
		"YOUTUBE_API_KEY": "key",
		"SEARCH_QUERY":    "runpod",
		"MAX_RESULTS":     "25",
	}))
	require.NoError(t, err)

	exp := config.Config{
		YoutubeAPIKey: "key",
		Search: config.Search{
			Query:         "runpod",
			MaxResults:    25,
			NewnessWindow: 24 * time.Hour,
		},
		StoreDriver:   "sqlite",
		StoreDSN:      "ytwatch.db",
		NotifyTimeout: 10 * time.Second,
		Schedule:      "*/30 * * * *",
		APIPort:       8080,
		LogLevel:      slog.LevelInfo,
	}
	assert.Equal(t, exp, cfg)
}

func TestLoadAll(t *testing.T) {
	cfg, err := config.Load(lookup(map[string]string{
		"YOUTUBE_API_KEY":      "key",
		"SEARCH_QUERY":         "runpod",
		"MAX_RESULTS":          "5",
		"NEWNESS_WINDOW_HOURS": "6",
		"STORE_DRIVER":         "postgres",
		"STORE_DSN":            "postgres://localhost/ytwatch",
		"SLACK_WEBHOOK_URL":    "https://hooks.slack.com/services/x",
		"NOTIFY_LABEL":         "RunPod",
		"NOTIFY_TIMEOUT":       "3s",
		"SEARCH_SCHEDULE":      "0 * * * *",
		"RUN_ON_START":         "yes",
		"API_PORT":             "9000",
		"LOG_LEVEL":            "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, cfg.Search.NewnessWindow)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "https://hooks.slack.com/services/x", cfg.WebhookURL)
	assert.Equal(t, "RunPod", cfg.NotifyLabel)
	assert.Equal(t, 3*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "0 * * * *", cfg.Schedule)
	assert.True(t, cfg.RunOnStart)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(lookup(map[string]string{
		"MAX_RESULTS":          "-1",
		"NEWNESS_WINDOW_HOURS": "soon",
		"STORE_DRIVER":         "redis",
		"RUN_ON_START":         "maybe",
	}))
	require.Error(t, err)

	for _, name := range []string{
		"YOUTUBE_API_KEY",
		"SEARCH_QUERY",
		"MAX_RESULTS",
		"NEWNESS_WINDOW_HOURS",
		"STORE_DRIVER",
		"RUN_ON_START",
	} {
		assert.Contains(t, err.Error(), name)
	}
}
