// Package config loads process configuration from the environment, with
// optional .env files, for the CLI and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the binaries read from the environment.
type Config struct {
	// Rendering
	Template     string `env:"SYGNEA_TEMPLATE" envDefault:"minimal"`
	Palette      string `env:"SYGNEA_PALETTE" envDefault:"default"`
	PaletteFile  string `env:"SYGNEA_PALETTE_FILE"`
	SocialStyle  string `env:"SYGNEA_SOCIAL_STYLE"`
	TemplatesDir string `env:"SYGNEA_TEMPLATES_DIR"`
	TextLayout   string `env:"SYGNEA_TEXT_LAYOUT"`
	PresetFile   string `env:"SYGNEA_PRESET_FILE"`
	Sanitize     bool   `env:"SYGNEA_SANITIZE" envDefault:"false"`

	// Clipboard
	Clipboard         string        `env:"SYGNEA_CLIPBOARD" envDefault:"auto"`
	ClipboardStrategy string        `env:"SYGNEA_CLIPBOARD_STRATEGY"`
	StagingDir        string        `env:"SYGNEA_STAGING_DIR"`
	CopyResetDelay    time.Duration `env:"SYGNEA_COPY_RESET_DELAY" envDefault:"2s"`

	// HTTP server
	HTTPAddr        string        `env:"SYGNEA_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"SYGNEA_HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SYGNEA_HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SYGNEA_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	MaxBodyBytes    int64         `env:"SYGNEA_HTTP_MAX_BODY" envDefault:"65536"`
	APIToken        string        `env:"SYGNEA_API_TOKEN"`

	// Logging
	LogLevel  string `env:"SYGNEA_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SYGNEA_LOG_FORMAT" envDefault:"console"`
}

// Clipboard backends.
const (
	ClipboardAuto    = "auto"
	ClipboardCommand = "command"
	ClipboardSystem  = "system"
	ClipboardMemory  = "memory"
)

var (
	validClipboards = []string{ClipboardAuto, ClipboardCommand, ClipboardSystem, ClipboardMemory}
	validStrategies = []string{"", "rich", "staged", "text"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// Load reads the given .env files (".env" when none are named and it
// exists), then parses the environment. Variables already set in the process
// environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid config: %w", err)
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Template) == "" {
		errs = append(errs, errors.New("SYGNEA_TEMPLATE is required"))
	}
	if !oneOf(c.Clipboard, validClipboards) {
		errs = append(errs, fmt.Errorf("SYGNEA_CLIPBOARD must be one of %s", strings.Join(validClipboards, ", ")))
	}
	if !oneOf(c.ClipboardStrategy, validStrategies) {
		errs = append(errs, errors.New("SYGNEA_CLIPBOARD_STRATEGY must be rich, staged or text"))
	}
	if c.CopyResetDelay <= 0 {
		errs = append(errs, errors.New("SYGNEA_COPY_RESET_DELAY must be positive"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("SYGNEA_HTTP_ADDR is required"))
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("HTTP timeouts must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("SYGNEA_HTTP_MAX_BODY must be positive"))
	}
	if !oneOf(c.LogLevel, validLogLevels) {
		errs = append(errs, fmt.Errorf("SYGNEA_LOG_LEVEL must be one of %s", strings.Join(validLogLevels, ", ")))
	}
	if !oneOf(c.LogFormat, validLogFormats) {
		errs = append(errs, errors.New("SYGNEA_LOG_FORMAT must be console or json"))
	}

	return errors.Join(errs...)
}

// String renders the configuration with secrets redacted.
func (c Config) String() string {
	token := ""
	if c.APIToken != "" {
		token = "[REDACTED]"
	}
	return fmt.Sprintf(
		"Config{Template:%s Palette:%s Sanitize:%t Clipboard:%s Strategy:%s HTTPAddr:%s APIToken:%s LogLevel:%s LogFormat:%s}",
		c.Template, c.Palette, c.Sanitize, c.Clipboard, c.ClipboardStrategy, c.HTTPAddr, token, c.LogLevel, c.LogFormat,
	)
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
