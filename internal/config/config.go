package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// WebBindDisabled turns the HTTP API off when used as WEB_BIND.
const WebBindDisabled = "off"

// MinJWTSecretLen is the shortest JWT_SECRET accepted for HS256 tokens.
const MinJWTSecretLen = 32

type Config struct {
	// Discord Bot
	DiscordToken string

	// Discord OAuth2 (API login)
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string

	// Catalog sources, in priority order
	DatabaseURL string
	CatalogFile string

	// Shop
	ShopName string
	Currency string

	// Web Server
	WebBind string
	// WebUIBaseURL is the only browser origin allowed by CORS. It follows the
	// redirect URI unless WEB_UI_BASE_URL overrides it.
	WebUIBaseURL string

	// Session
	JWTSecret string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so it can be tested
// without touching the process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		DiscordToken:        get("DISCORD_TOKEN", ""),
		DiscordClientID:     get("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: get("DISCORD_CLIENT_SECRET", ""),
		DiscordRedirectURI:  get("DISCORD_REDIRECT_URI", "http://localhost:3000/api/auth/callback"),
		DatabaseURL:         get("DATABASE_URL", ""),
		CatalogFile:         get("CATALOG_FILE", ""),
		ShopName:            get("SHOP_NAME", "RoyalBakes"),
		Currency:            get("CURRENCY", "RWF"),
		WebBind:             get("WEB_BIND", "0.0.0.0:3000"),
		JWTSecret:           get("JWT_SECRET", ""),
	}

	// Extract base URL from redirect URI
	cfg.WebUIBaseURL = extractBaseURL(get("WEB_UI_BASE_URL", cfg.DiscordRedirectURI))

	if !cfg.BotEnabled() && !cfg.APIEnabled() {
		return nil, fmt.Errorf("DISCORD_TOKEN is required when WEB_BIND=%s", WebBindDisabled)
	}
	if cfg.APIEnabled() && (cfg.DiscordClientID == "") != (cfg.DiscordClientSecret == "") {
		return nil, fmt.Errorf("DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET must be set together")
	}
	// API tokens are only issued and checked when login is on.
	if cfg.APIEnabled() && cfg.LoginEnabled() && len(cfg.JWTSecret) < MinJWTSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes when Discord login is enabled", MinJWTSecretLen)
	}

	return cfg, nil
}

func (c *Config) BotEnabled() bool {
	return c.DiscordToken != ""
}

func (c *Config) APIEnabled() bool {
	return !strings.EqualFold(c.WebBind, WebBindDisabled)
}

// LoginEnabled reports whether Discord OAuth2 login is configured for the API.
func (c *Config) LoginEnabled() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != ""
}

func extractBaseURL(redirectURI string) string {
	// e.g., "http://localhost:3000/api/auth/callback" -> "http://localhost:3000"
	parsed, err := url.Parse(redirectURI)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "http://localhost:3000"
	}

	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
}
