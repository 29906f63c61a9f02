package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ewintr.nl/ytwatch/storage"
	"golang.org/x/exp/slog"
)

// Search holds everything a single run needs to know about what to look for.
type Search struct {
	Query         string
	MaxResults    int
	NewnessWindow time.Duration
}

type Config struct {
	YoutubeAPIKey string
	Search        Search
	StoreDriver   string
	StoreDSN      string
	WebhookURL    string
	NotifyLabel   string
	NotifyTimeout time.Duration
	Schedule      string
	RunOnStart    bool
	APIPort       int
	LogLevel      slog.Level
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Load reads the configuration through lookup. Every problem found is
// reported in the returned error, not only the first.
func Load(lookup LookupFunc) (Config, error) {
	p := params{lookup: lookup}

	cfg := Config{
		YoutubeAPIKey: p.required("YOUTUBE_API_KEY"),
		Search: Search{
			Query:         p.required("SEARCH_QUERY"),
			MaxResults:    p.positiveInt("MAX_RESULTS", "", true),
			NewnessWindow: time.Duration(p.positiveInt("NEWNESS_WINDOW_HOURS", "24", false)) * time.Hour,
		},
		StoreDriver:   p.get("STORE_DRIVER", storage.DriverSQLite),
		StoreDSN:      p.get("STORE_DSN", "ytwatch.db"),
		WebhookURL:    p.get("SLACK_WEBHOOK_URL", ""),
		NotifyLabel:   p.get("NOTIFY_LABEL", ""),
		NotifyTimeout: p.duration("NOTIFY_TIMEOUT", "10s"),
		Schedule:      p.get("SEARCH_SCHEDULE", "*/30 * * * *"),
		RunOnStart:    p.boolean("RUN_ON_START", false),
		APIPort:       p.positiveInt("API_PORT", "8080", false),
		LogLevel:      p.level("LOG_LEVEL", "info"),
	}

	switch cfg.StoreDriver {
	case storage.DriverMemory, storage.DriverSQLite, storage.DriverPostgres:
	default:
		p.fail("STORE_DRIVER", fmt.Errorf("unknown driver %q", cfg.StoreDriver))
	}

	return cfg, errors.Join(p.errs...)
}

type params struct {
	lookup LookupFunc
	errs   []error
}

func (p *params) fail(name string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
}

func (p *params) get(name, def string) string {
	if val, ok := p.lookup(name); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return def
}

func (p *params) required(name string) string {
	val := p.get(name, "")
	if val == "" {
		p.fail(name, errors.New("not set"))
	}
	return val
}

func (p *params) positiveInt(name, def string, required bool) int {
	raw := p.get(name, def)
	if raw == "" {
		if required {
			p.fail(name, errors.New("not set"))
		}
		return 0
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, err)
		return 0
	}
	if val <= 0 {
		p.fail(name, fmt.Errorf("must be positive, got %d", val))
		return 0
	}
	return val
}

func (p *params) duration(name, def string) time.Duration {
	val, err := time.ParseDuration(p.get(name, def))
	if err != nil {
		p.fail(name, err)
		return 0
	}
	return val
}

func (p *params) boolean(name string, def bool) bool {
	raw := p.get(name, "")
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		p.fail(name, fmt.Errorf("invalid boolean %q", raw))
		return def
	}
}

func (p *params) level(name, def string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(p.get(name, def))); err != nil {
		p.fail(name, err)
		return slog.LevelInfo
	}
	return lvl
}
