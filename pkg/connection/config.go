package connection

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/featherdb/featherdb.go/pkg/logger"
)

// Config carries everything needed to talk to one FeatherDB server.
type Config struct {
	// BaseURL is the server root, such as "http://localhost:5984".
	BaseURL string
	// Username and Password are sent as basic auth when non-empty.
	Username string
	Password string
	// HTTPClient performs buffered exchanges. Live streams use a separate
	// zero-timeout copy, since a client-level timeout would kill an
	// intentionally unbounded feed.
	HTTPClient *http.Client
	// IdleTimeout closes a live stream that stays silent past the given
	// interval. Zero disables the watchdog; heartbeats reset it.
	IdleTimeout time.Duration
	// Logger receives request-level debug logging.
	Logger logger.Logger
}

// NewConfig returns a Config for the given endpoint URL with defaults
// filled in. Credentials embedded in the URL are lifted into the config.
func NewConfig(u *url.URL) *Config {
	cfg := &Config{
		BaseURL: u.Scheme + "://" + u.Host,
		Logger:  logger.New(slog.NewTextHandler(os.Stdout, nil)),
	}
	if u.User != nil {
		cfg.Username = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}
	return cfg
}
