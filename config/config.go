// Package config loads the bot's TOML configuration and applies the
// environment-variable overrides the process entry point reads at
// startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
	"github.com/amrates/rateengine/source"
)

// Webhook is the bot.webhook TOML sub-table.
type Webhook struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	Cert string `toml:"cert"`
}

// Bot is the top-level [bot] TOML section.
type Bot struct {
	ReqwestTimeoutSeconds int     `toml:"reqwest_timeout"`
	UpdateIntervalSeconds int     `toml:"update_interval"`
	Polling               bool    `toml:"polling"`
	Webhook               Webhook `toml:"webhook"`
}

// RequestTemplate is the `req` sub-table some sources need for
// structured form/XML POSTs (e.g. Avosend's corridor parameters).
type RequestTemplate map[string]string

// SourceEntry is one [src.<name>] TOML sub-table. Fields are pointers
// so an absent key in the TOML document means "leave the registry
// default alone" rather than "set to zero".
// Commission rates arrive as TOML floats; they are converted to decimal
// once here, before any rate arithmetic sees them.
type SourceEntry struct {
	RatesURL                  *string         `toml:"rates_url"`
	Enabled                   *bool           `toml:"enabled"`
	CommissionRate            *float64        `toml:"commission_rate"`
	CommissionRateToRuCard    *float64        `toml:"commission_rate_to_ru_card"`
	CommissionRateFromBank    *float64        `toml:"commission_rate_from_bank"`
	CommissionRateFromAnyCard *float64        `toml:"commission_rate_from_any_card"`
	Req                       RequestTemplate `toml:"req"`
}

// Config is the root TOML document: [bot] plus one [src.<name>] entry
// per provider.
type Config struct {
	Bot Bot                    `toml:"bot"`
	Src map[string]SourceEntry `toml:"src"`
}

// ReqwestTimeout and UpdateInterval expose Bot's int-seconds fields as
// time.Duration, the shape the HTTP client and refresh loop want.
func (b Bot) ReqwestTimeout() time.Duration {
	return time.Duration(b.ReqwestTimeoutSeconds) * time.Second
}

func (b Bot) UpdateInterval() time.Duration {
	return time.Duration(b.UpdateIntervalSeconds) * time.Second
}

// Load reads and parses the TOML document at path, then applies the
// environment-variable overrides: POLLING, HOST, PORT, CERT,
// REQWEST_TIMEOUT, UPDATE_INTERVAL. A missing or malformed file is
// fatal at startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// ConfigPath resolves the config file path: the BOT_CONFIG environment
// variable if set, otherwise the given default.
func ConfigPath(defaultPath string) string {
	if v := strings.TrimSpace(os.Getenv("BOT_CONFIG")); v != "" {
		return v
	}
	return defaultPath
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("POLLING")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Bot.Polling = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("HOST")); v != "" {
		cfg.Bot.Webhook.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bot.Webhook.Port = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CERT")); v != "" {
		cfg.Bot.Webhook.Cert = v
	}
	if v := strings.TrimSpace(os.Getenv("REQWEST_TIMEOUT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bot.ReqwestTimeoutSeconds = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("UPDATE_INTERVAL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bot.UpdateIntervalSeconds = n
		}
	}
}

// Validate reports an error for a document missing fields the rest of
// the process cannot run without.
func (c *Config) Validate() error {
	if c.Bot.ReqwestTimeoutSeconds <= 0 {
		return errors.New("config: bot.reqwest_timeout must be positive")
	}
	if c.Bot.UpdateIntervalSeconds <= 0 {
		return errors.New("config: bot.update_interval must be positive")
	}
	if !c.Bot.Polling && c.Bot.Webhook.Host == "" {
		return fmt.Errorf("config: bot.webhook.host is required when polling is disabled")
	}
	return nil
}

// BuildRegistry merges this document's [src.<name>] overrides onto
// defaults, producing the registry the collector fans out over. defaults
// is never mutated; unknown TOML source names are rejected so a typo in
// the document doesn't silently do nothing.
func BuildRegistry(c *Config, defaults map[ratemodel.Source]source.Config) (map[ratemodel.Source]source.Config, error) {
	out := make(map[ratemodel.Source]source.Config, len(defaults))
	for src, cfg := range defaults {
		out[src] = cfg
	}

	for name, entry := range c.Src {
		src, ok := ratemodel.ParseSource(name)
		if !ok {
			return nil, fmt.Errorf("config: [src.%s] is not a known source", name)
		}
		cfg, ok := out[src]
		if !ok {
			return nil, fmt.Errorf("config: [src.%s] has no adapter registered", name)
		}

		if entry.RatesURL != nil {
			cfg.RatesURL = *entry.RatesURL
		}
		if entry.Enabled != nil {
			cfg.Disabled = !*entry.Enabled
		}
		if entry.CommissionRate != nil {
			cfg.CommissionPct = decimal.NewFromFloat(*entry.CommissionRate)
		}
		if entry.CommissionRateToRuCard != nil {
			cfg.ExtraSellCommissionPct = decimal.NewFromFloat(*entry.CommissionRateToRuCard)
		}
		if len(entry.Req) > 0 {
			cfg.FormFields = map[string]string(entry.Req)
		}
		if entry.CommissionRateFromBank != nil || entry.CommissionRateFromAnyCard != nil {
			var variants []decimal.Decimal
			if entry.CommissionRateFromBank != nil {
				variants = append(variants, decimal.NewFromFloat(*entry.CommissionRateFromBank))
			}
			if entry.CommissionRateFromAnyCard != nil {
				variants = append(variants, decimal.NewFromFloat(*entry.CommissionRateFromAnyCard))
			}
			cfg.BuyCommissionVariantsPct = variants
		}
		out[src] = cfg
	}
	return out, nil
}
