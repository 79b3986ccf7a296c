package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/solwatch/walletwatch/internal/secrets"
)

// Known stable-class mints on mainnet (USDC, USDT).
const (
	defaultUSDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	defaultUSDTMint = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

// Config holds all application configuration.
type Config struct {
	// Environment
	Environment string

	// Watch list
	WatchlistPath       string
	WatchlistRefreshSec int

	// Detection thresholds
	MinNativeDelta float64 // SOL; 0 disables the dimension (always passes)
	MinStableDelta float64 // display units; same zero policy
	MinLegSize     float64 // display units; same zero policy

	// Alerting behaviour
	CooldownWindowSec int64
	MaxAlertsPerBatch int
	EscalationScore   int
	WatchedTypes      []string
	StableMints       []string
	NativeDecimals    int

	// Scoring policy (band ladders), optionally overridden from a YAML file
	PolicyPath string
	Policy     Policy

	// Ingress
	ListenPort       int
	WebhookAuthToken string

	// Alerts
	AlertMode         string // log, discord, smtp (comma-separated for multi)
	DiscordWebhookURL string
	AlertSendRPS      float64
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPFrom          string
	SMTPTo            []string
}

// Load reads configuration from environment variables and, when POLICY_PATH
// is set, the scoring policy file.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:         getEnv("ENVIRONMENT", "production"),
		WatchlistPath:       getEnv("WATCHLIST_PATH", "watchlist.json"),
		WatchlistRefreshSec: getEnvInt("WATCHLIST_REFRESH_SEC", 300),
		MinNativeDelta:      getEnvFloat("MIN_NATIVE_DELTA", 0.25),
		MinStableDelta:      getEnvFloat("MIN_STABLE_DELTA", 1000.0),
		MinLegSize:          getEnvFloat("MIN_LEG_SIZE", 1000.0),
		CooldownWindowSec:   int64(getEnvInt("COOLDOWN_WINDOW_SEC", 300)),
		MaxAlertsPerBatch:   getEnvInt("MAX_ALERTS_PER_BATCH", 5),
		EscalationScore:     getEnvInt("ESCALATION_SCORE", 8),
		NativeDecimals:      getEnvInt("NATIVE_DECIMALS", 9),
		PolicyPath:          getEnv("POLICY_PATH", ""),
		ListenPort:          getEnvInt("LISTEN_PORT", 8080),
		WebhookAuthToken:    secrets.GetOptional("WEBHOOK_AUTH_TOKEN", ""),
		AlertMode:           getEnv("ALERT_MODE", "log"),
		DiscordWebhookURL:   secrets.GetOptional("DISCORD_WEBHOOK_URL", ""),
		AlertSendRPS:        getEnvFloat("ALERT_SEND_RPS", 1.0),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnvInt("SMTP_PORT", 587),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        secrets.GetOptional("SMTP_PASSWORD", ""),
		SMTPFrom:            getEnv("SMTP_FROM", "walletwatch@example.com"),
	}

	cfg.WatchedTypes = parseCSV(getEnv("WATCHED_TYPES", "SWAP,TRANSFER"))
	cfg.StableMints = parseCSV(getEnv("STABLE_MINTS", defaultUSDCMint+","+defaultUSDTMint))
	if smtpTo := getEnv("SMTP_TO", ""); smtpTo != "" {
		cfg.SMTPTo = parseCSV(smtpTo)
	}

	cfg.Policy = DefaultPolicy()
	if cfg.PolicyPath != "" {
		policy, err := LoadPolicy(cfg.PolicyPath)
		if err != nil {
			return nil, fmt.Errorf("load policy %s: %w", cfg.PolicyPath, err)
		}
		cfg.Policy = policy
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if c.WatchlistPath == "" {
		return fmt.Errorf("WATCHLIST_PATH is required")
	}
	if c.NativeDecimals < 0 || c.NativeDecimals > 18 {
		return fmt.Errorf("NATIVE_DECIMALS must be between 0 and 18, got %d", c.NativeDecimals)
	}
	if c.MaxAlertsPerBatch < 1 {
		return fmt.Errorf("MAX_ALERTS_PER_BATCH must be at least 1, got %d", c.MaxAlertsPerBatch)
	}

	hasDiscord := false
	hasSMTP := false
	for _, mode := range strings.Split(c.AlertMode, ",") {
		switch strings.TrimSpace(mode) {
		case "log":
		case "discord":
			hasDiscord = true
		case "smtp":
			hasSMTP = true
		default:
			return fmt.Errorf("invalid ALERT_MODE value: %s (valid values: log, discord, smtp)", mode)
		}
	}
	if hasDiscord && c.DiscordWebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required when discord is in ALERT_MODE")
	}
	if hasSMTP && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required when smtp is in ALERT_MODE")
	}
	if hasSMTP && len(c.SMTPTo) == 0 {
		return fmt.Errorf("SMTP_TO is required when smtp is in ALERT_MODE")
	}

	return c.Policy.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func parseCSV(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
