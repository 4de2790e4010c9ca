package config

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Host          string        `env:"HOST,           default=127.0.0.1"`
	Port          string        `env:"PORT,           default=3000"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionSecret string        `env:"SESSION_SECRET, default=duck_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	TrustProxy    bool          `env:"TRUST_PROXY,    default=false"`
	BlockedURL    string        `env:"BLOCKED_URL,    default=/blocked.html"`
	BcryptCost    int           `env:"BCRYPT_COST,    default=10"`

	// TrustedProxies lists extra CIDRs whose X-Forwarded-For is honored.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	Store    StoreConfig
	Sessions SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Search   SearchConfig
}

type StoreConfig struct {
	Driver  string `env:"STORE_DRIVER, default=file"`
	DataDir string `env:"DATA_DIR,     default=backend/data"`
	DSN     string `env:"STORE_DSN,    default=portal.db"`
}

type SessionConfig struct {
	Driver string `env:"SESSION_DRIVER, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SearchConfig struct {
	URL       string        `env:"SEARCH_URL,        default=https://html.duckduckgo.com/html"`
	Timeout   time.Duration `env:"SEARCH_TIMEOUT,    default=10s"`
	UserAgent string        `env:"SEARCH_USER_AGENT, default=DuckCorpProxy/1.0"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DefaultSessionSecret is the development fallback for SESSION_SECRET.
const DefaultSessionSecret = "duck_secret_change_me"

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Env == "production" && c.SessionSecret == DefaultSessionSecret {
		return fmt.Errorf("config: SESSION_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if _, err := c.ProxyRanges(); err != nil {
		return err
	}
	return nil
}

// ProxyRanges parses TrustedProxies.
func (c *Config) ProxyRanges() ([]*net.IPNet, error) {
	ranges := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, cidr := range c.TrustedProxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}
