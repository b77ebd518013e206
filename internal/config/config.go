// Package config resolves the command settings from defaults, an optional
// config file, NTS_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ntstracks/internal/formatter"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "NTS"

// Config is the fully resolved configuration of one invocation.
type Config struct {
	Driver        string        `mapstructure:"driver"`
	SkipMalformed bool          `mapstructure:"skip_malformed"`
	LogLevel      string        `mapstructure:"log_level"`
	Browser       BrowserConfig `mapstructure:"browser"`
	Wait          WaitConfig    `mapstructure:"wait"`
	Output        OutputConfig  `mapstructure:"output"`
}

type BrowserConfig struct {
	ShowUI     bool          `mapstructure:"show_ui"`
	Proxy      string        `mapstructure:"proxy"`
	NoSandbox  bool          `mapstructure:"no_sandbox"`
	NavTimeout time.Duration `mapstructure:"nav_timeout"`
}

type WaitConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	ScrollDelay  time.Duration `mapstructure:"scroll_delay"`
	MaxScrolls   int           `mapstructure:"max_scrolls"`
	ScrollBudget time.Duration `mapstructure:"scroll_budget"`
}

type OutputConfig struct {
	Format      string `mapstructure:"format"`
	File        string `mapstructure:"file"`
	NoClipboard bool   `mapstructure:"no_clipboard"`
}

// Driver names.
const (
	DriverRod    = "rod"
	DriverStatic = "static"
)

// flag name -> config key
var flagKeys = map[string]string{
	"driver":         "driver",
	"skip-malformed": "skip_malformed",
	"log-level":      "log_level",
	"showui":         "browser.show_ui",
	"proxy":          "browser.proxy",
	"no-sandbox":     "browser.no_sandbox",
	"nav-timeout":    "browser.nav_timeout",
	"timeout":        "wait.timeout",
	"scroll-delay":   "wait.scroll_delay",
	"max-scrolls":    "wait.max_scrolls",
	"scroll-budget":  "wait.scroll_budget",
	"format":         "output.format",
	"output":         "output.file",
	"no-clipboard":   "output.no_clipboard",
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("driver", DriverRod)
	v.SetDefault("skip_malformed", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("browser.show_ui", false)
	v.SetDefault("browser.proxy", "")
	v.SetDefault("browser.no_sandbox", false)
	v.SetDefault("browser.nav_timeout", 30*time.Second)
	v.SetDefault("wait.timeout", 10*time.Second)
	v.SetDefault("wait.scroll_delay", 2*time.Second)
	v.SetDefault("wait.max_scrolls", 200)
	v.SetDefault("wait.scroll_budget", 5*time.Minute)
	v.SetDefault("output.format", "text")
	v.SetDefault("output.file", "")
	v.SetDefault("output.no_clipboard", false)
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (yaml, json or toml)")
	fs.String("driver", DriverRod, "Page driver: rod (headless Chrome) or static (plain HTTP, no JavaScript)")
	fs.Bool("skip-malformed", false, "Skip tracks missing an artist or title instead of failing")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.Bool("showui", false, "Show browser UI (disable headless mode)")
	fs.StringP("proxy", "p", "", "Proxy URL (e.g. http://127.0.0.1:7890)")
	fs.Bool("no-sandbox", false, "Launch Chrome without its sandbox (needed as root in containers)")
	fs.Duration("nav-timeout", 30*time.Second, "Page load timeout")
	fs.DurationP("timeout", "t", 10*time.Second, "How long to wait for tracks to appear on a page")
	fs.Duration("scroll-delay", 2*time.Second, "Pause after each scroll while loading a show's episodes")
	fs.Int("max-scrolls", 200, "Maximum scrolls while loading a show's episodes (0 for no limit)")
	fs.Duration("scroll-budget", 5*time.Minute, "Maximum time spent scrolling a show page (0 for no limit)")
	fs.StringP("format", "f", "text", "Output format ("+strings.Join(formatter.Formats, ", ")+")")
	fs.StringP("output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	fs.Bool("no-clipboard", false, "Do not copy the result to the clipboard")
}

// Load resolves the configuration. fs must have been set up with
// RegisterFlags and parsed.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	SetDefaults(v)

	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Output.File != "" && cfg.Output.Format == "text" {
		if inferred := inferFormatFromExtension(cfg.Output.File); inferred != "" {
			cfg.Output.Format = inferred
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Driver != DriverRod && c.Driver != DriverStatic {
		errs = append(errs, fmt.Errorf("invalid driver: %s", c.Driver))
	}
	if !formatter.Valid(c.Output.Format) {
		errs = append(errs, fmt.Errorf("invalid output format: %s", c.Output.Format))
	}
	if c.Wait.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Wait.Timeout))
	}
	if c.Wait.ScrollDelay < 0 {
		errs = append(errs, fmt.Errorf("scroll delay must not be negative, got %s", c.Wait.ScrollDelay))
	}
	if c.Wait.MaxScrolls < 0 {
		errs = append(errs, fmt.Errorf("max scrolls must not be negative, got %d", c.Wait.MaxScrolls))
	}
	if c.Wait.ScrollBudget < 0 {
		errs = append(errs, fmt.Errorf("scroll budget must not be negative, got %s", c.Wait.ScrollBudget))
	}
	if c.Browser.NavTimeout < 0 {
		errs = append(errs, fmt.Errorf("navigation timeout must not be negative, got %s", c.Browser.NavTimeout))
	}
	return errors.Join(errs...)
}

// inferFormatFromExtension infers output format from file extension
func inferFormatFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".html", ".htm":
		return "html"
	case ".txt":
		return "text"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}
