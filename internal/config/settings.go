package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
	"github.com/Veraticus/robux-must-flow/internal/session"
)

// Configuration keys.
const (
	KeyCookie          = "roblox.cookie"
	KeyUsersURL        = "roblox.users_url"
	KeyEconomyURL      = "roblox.economy_url"
	KeyMaxTransactions = "fetch.max_transactions"
	KeyTimeout         = "fetch.timeout"
	KeyRetries         = "fetch.retries"
	KeyRetryDelay      = "fetch.retry_delay"
	KeyCacheTTL        = "cache.ttl"
	KeyBudgetOverall   = "budget.overall"
	KeyBudgetMonthly   = "budget.monthly"
	KeyBudgetThreshold = "budget.threshold"
	KeyForecastMonths  = "forecast.months"
	KeyServerPort      = "server.port"
	KeyAllowedOrigins  = "server.allowed_origins"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyTheme           = "dashboard.theme"
)

// Settings is the resolved configuration.
type Settings struct {
	Logging  LoggingSettings
	Roblox   RobloxSettings
	Server   ServerSettings
	Fetch    FetchSettings
	Budgets  session.Budgets
	CacheTTL time.Duration
	Forecast int
}

// RobloxSettings selects the account and endpoints.
type RobloxSettings struct {
	Cookie     roblox.Credential
	UsersURL   string
	EconomyURL string
}

// FetchSettings bounds a history fetch.
type FetchSettings struct {
	Timeout         time.Duration
	RetryDelay      time.Duration
	MaxTransactions int
	Retries         int
}

// ServerSettings configures `robux serve`.
type ServerSettings struct {
	AllowedOrigins []string
	Port           int
}

// LoggingSettings configures slog.
type LoggingSettings struct {
	Level  string
	Format string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyUsersURL, roblox.DefaultUsersURL)
	v.SetDefault(KeyEconomyURL, roblox.DefaultEconomyURL)
	v.SetDefault(KeyMaxTransactions, roblox.DefaultMaxTransactions)
	v.SetDefault(KeyTimeout, roblox.DefaultTimeout)
	v.SetDefault(KeyRetries, 0)
	v.SetDefault(KeyRetryDelay, time.Second)
	v.SetDefault(KeyCacheTTL, session.DefaultTTL)
	v.SetDefault(KeyBudgetOverall, 0)
	v.SetDefault(KeyBudgetMonthly, 0)
	v.SetDefault(KeyBudgetThreshold, analytics.DefaultThreshold)
	v.SetDefault(KeyForecastMonths, analytics.DefaultForecastMonths)
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyAllowedOrigins, []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyTheme, "default")
}

// ConfigureEnv maps ROBUX_SECTION_KEY variables onto section.key.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads Settings from v and validates them. The cookie is not
// required here; commands that talk to Roblox check it with RequireCookie.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Roblox: RobloxSettings{
			Cookie:     roblox.Credential(strings.TrimSpace(v.GetString(KeyCookie))),
			UsersURL:   v.GetString(KeyUsersURL),
			EconomyURL: v.GetString(KeyEconomyURL),
		},
		Fetch: FetchSettings{
			MaxTransactions: v.GetInt(KeyMaxTransactions),
			Timeout:         v.GetDuration(KeyTimeout),
			Retries:         v.GetInt(KeyRetries),
			RetryDelay:      v.GetDuration(KeyRetryDelay),
		},
		CacheTTL: v.GetDuration(KeyCacheTTL),
		Budgets: session.Budgets{
			Overall:   v.GetFloat64(KeyBudgetOverall),
			Monthly:   v.GetFloat64(KeyBudgetMonthly),
			Threshold: v.GetFloat64(KeyBudgetThreshold),
		},
		Forecast: v.GetInt(KeyForecastMonths),
		Server: ServerSettings{
			Port:           v.GetInt(KeyServerPort),
			AllowedOrigins: v.GetStringSlice(KeyAllowedOrigins),
		},
		Logging: LoggingSettings{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks ranges and formats.
func (s Settings) Validate() error {
	if s.Fetch.MaxTransactions <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyMaxTransactions)
	}
	if s.Fetch.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyTimeout)
	}
	if s.Fetch.Retries < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyRetries)
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyCacheTTL)
	}
	if err := s.Budgets.Validate(); err != nil {
		return err
	}
	if s.Forecast <= 0 || s.Forecast > 24 {
		return fmt.Errorf("%w: %s must be between 1 and 24", common.ErrInvalidConfig, KeyForecastMonths)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: %s %d is out of range", common.ErrInvalidConfig, KeyServerPort, s.Server.Port)
	}
	if _, err := common.ParseLevel(s.Logging.Level); err != nil {
		return err
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, s.Logging.Format)
	}
	return nil
}

// RequireCookie fails when no session cookie is configured.
func (s Settings) RequireCookie() error {
	if s.Roblox.Cookie.Empty() {
		return common.NewUserError(
			"No Roblox cookie configured. Set ROBUX_ROBLOX_COOKIE or roblox.cookie in your config file",
			common.ErrMissingConfig)
	}
	return nil
}

// ClientConfig builds the transport configuration.
func (s Settings) ClientConfig() roblox.Config {
	return roblox.Config{
		Credential: s.Roblox.Cookie,
		UsersURL:   s.Roblox.UsersURL,
		EconomyURL: s.Roblox.EconomyURL,
		Timeout:    s.Fetch.Timeout,
		Retries:    s.Fetch.Retries,
		RetryDelay: s.Fetch.RetryDelay,
	}
}
