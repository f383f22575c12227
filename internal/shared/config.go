package shared

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Settings is the resolved configuration, read-only once constructed.
type Settings struct {
	AppEnv string

	// OAuth2 client-credentials
	ClientID     string
	ClientSecret string

	// Upstream API
	BaseURL    string
	PropertyID string
	Timeout    time.Duration
	MaxRetries int

	MockMode bool

	// MCP HTTP transport
	HTTPHost string
	HTTPPort int

	// Optional subsystems
	MetricsAddr string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	CacheTTL    time.Duration

	LogLevel string
}

const envPrefix = "SYNXIS_PMS"

// Load resolves settings from SYNXIS_PMS_* environment variables with the
// documented defaults. Out-of-range timeout and retry values are clamped,
// not rejected.
func Load() Settings {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app_env", "prod")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("base_url", "https://api.synxis.com/pms/v1")
	v.SetDefault("property_id", "")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("max_retries", 3)
	v.SetDefault("mock_mode", false)
	v.SetDefault("http_host", "127.0.0.1")
	v.SetDefault("http_port", 3047)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl_seconds", 300)
	v.SetDefault("log_level", "info")

	s := Settings{
		AppEnv:       v.GetString("app_env"),
		ClientID:     v.GetString("client_id"),
		ClientSecret: v.GetString("client_secret"),
		BaseURL:      normalizeBaseURL(v.GetString("base_url")),
		PropertyID:   v.GetString("property_id"),
		Timeout:      time.Duration(clampInt(v.GetInt("timeout_seconds"), 1, 120)) * time.Second,
		MaxRetries:   clampInt(v.GetInt("max_retries"), 0, 5),
		MockMode:     v.GetBool("mock_mode"),
		HTTPHost:     v.GetString("http_host"),
		HTTPPort:     clampInt(v.GetInt("http_port"), 1, 65535),
		MetricsAddr:  v.GetString("metrics_addr"),
		RedisAddr:    v.GetString("redis_addr"),
		RedisPass:    v.GetString("redis_password"),
		RedisDB:      v.GetInt("redis_db"),
		CacheTTL:     time.Duration(v.GetInt("cache_ttl_seconds")) * time.Second,
		LogLevel:     v.GetString("log_level"),
	}
	if !s.MockMode && !s.HasCredentials() {
		log.Warn().Msg("client credentials are empty and mock mode is off")
	}
	return s
}

func (s Settings) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// MaskedClientID is safe for logs: at most the last four characters.
func (s Settings) MaskedClientID() string {
	if len(s.ClientID) > 4 {
		return "..." + s.ClientID[len(s.ClientID)-4:]
	}
	return "***"
}

func normalizeBaseURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return "https://api.synxis.com/pms/v1"
	}
	return u
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
