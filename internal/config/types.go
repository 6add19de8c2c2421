package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Secret wraps strings that should never appear in logs or serialized
// output. Use Value() to access the actual secret.
type Secret string

// String implements fmt.Stringer. Always returns the redacted form.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// MarshalJSON implements json.Marshaler. Secrets serialize redacted.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Value returns the actual secret value.
func (s Secret) Value() string { return string(s) }

// Config is the full casebook configuration, loaded once at startup and
// injected into commands; nothing reads preferences ambiently after init.
type Config struct {
	API      APIConfig      `koanf:"api"`
	Practice PracticeConfig `koanf:"practice"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	// BaseURL is the backend root URL.
	BaseURL string `koanf:"base_url"`
	// Token is the bearer token for authenticated endpoints. Obtaining
	// the token is out of scope; it is provisioned into config or env.
	Token Secret `koanf:"token"`
	// Timeout bounds each request.
	Timeout Duration `koanf:"timeout"`
}

// PracticeConfig holds display preferences. Informational only, never
// validated against the backend.
type PracticeConfig struct {
	Name      string `koanf:"name"`
	UserName  string `koanf:"user_name"`
	UserEmail string `koanf:"user_email"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is "console" or "json".
	Format string `koanf:"format"`
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
