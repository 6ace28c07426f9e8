// Package config loads feeportal settings from a YAML file, FEEPORTAL_*
// environment variables and an optional .env file, using viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/paths"
)

// EnvPrefix is prepended to every environment override, e.g. FEEPORTAL_DATA_SOURCE.
const EnvPrefix = "FEEPORTAL"

// Data sources.
const (
	SourceFixture = "fixture"
	SourceSQLite  = "sqlite"
)

// Telemetry exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config holds all feeportal settings.
type Config struct {
	Debug     bool            `mapstructure:"debug"`
	Log       LogConfig       `mapstructure:"log"`
	Submit    SubmitConfig    `mapstructure:"submit"`
	Data      DataConfig      `mapstructure:"data"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	UI        UIConfig        `mapstructure:"ui"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// LogConfig controls the debug log file and the in-app log overlay.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	BufferSize int    `mapstructure:"buffer_size"`
	Level      string `mapstructure:"level"`
}

// SubmitConfig sets the simulated submission delays.
type SubmitConfig struct {
	LoginDelay        time.Duration `mapstructure:"login_delay"`
	RegistrationDelay time.Duration `mapstructure:"registration_delay"`
}

// DataConfig selects where payment history comes from.
type DataConfig struct {
	Source   string        `mapstructure:"source"`
	Fixture  string        `mapstructure:"fixture"`
	Watch    bool          `mapstructure:"watch"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// TelemetryConfig selects the trace exporter.
type TelemetryConfig struct {
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Mouse     bool   `mapstructure:"mouse"`
	AmountDue string `mapstructure:"amount_due"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			BufferSize: 500,
			Level:      "debug",
		},
		Submit: SubmitConfig{
			LoginDelay:        1500 * time.Millisecond,
			RegistrationDelay: 2000 * time.Millisecond,
		},
		Data: DataConfig{
			Source:   SourceFixture,
			CacheTTL: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Exporter: ExporterNone,
		},
		UI: UIConfig{
			Mouse:     true,
			AmountDue: "$2,500.00",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.buffer_size", d.Log.BufferSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("submit.login_delay", d.Submit.LoginDelay)
	v.SetDefault("submit.registration_delay", d.Submit.RegistrationDelay)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.fixture", d.Data.Fixture)
	v.SetDefault("data.watch", d.Data.Watch)
	v.SetDefault("data.cache_ttl", d.Data.CacheTTL)
	v.SetDefault("telemetry.exporter", d.Telemetry.Exporter)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.amount_due", d.UI.AmountDue)
}

// Options controls Load.
type Options struct {
	// Path is an explicit config file. When empty the standard locations are searched.
	Path string
	// WorkDir is where .feeportal.yaml and .env are looked up. Defaults to ".".
	WorkDir string
	// Overrides are applied last, keyed by dotted config key. Command-line
	// flags that were explicitly set end up here.
	Overrides map[string]any
}

// Load builds a Config from defaults, the config file, .env, the environment
// and overrides, in increasing order of precedence. The result is validated.
func Load(opts Options) (Config, error) {
	if err := LoadDotEnv(opts.WorkDir); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := paths.ResolveConfigFile(opts.Path, opts.WorkDir)
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "Config loaded", "file", file, "source", cfg.Data.Source, "exporter", cfg.Telemetry.Exporter)
	return cfg, nil
}

// LoadDotEnv loads <dir>/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("log.buffer_size must be positive, got %d", c.Log.BufferSize))
	}
	if c.Submit.LoginDelay <= 0 {
		errs = append(errs, fmt.Errorf("submit.login_delay must be positive, got %s", c.Submit.LoginDelay))
	}
	if c.Submit.RegistrationDelay <= 0 {
		errs = append(errs, fmt.Errorf("submit.registration_delay must be positive, got %s", c.Submit.RegistrationDelay))
	}

	switch c.Data.Source {
	case SourceFixture, SourceSQLite:
	default:
		errs = append(errs, fmt.Errorf("data.source must be %q or %q, got %q", SourceFixture, SourceSQLite, c.Data.Source))
	}
	if c.Data.Watch && c.Data.Fixture == "" {
		errs = append(errs, errors.New("data.watch requires data.fixture"))
	}
	if c.Data.Watch && c.Data.Source == SourceSQLite {
		errs = append(errs, errors.New("data.watch is only supported with the fixture source"))
	}
	if c.Data.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("data.cache_ttl must not be negative, got %s", c.Data.CacheTTL))
	}

	switch c.Telemetry.Exporter {
	case ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.Telemetry.Endpoint == "" {
			errs = append(errs, errors.New("telemetry.endpoint is required for the otlp exporter"))
		}
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of none, stdout, otlp, got %q", c.Telemetry.Exporter))
	}

	return errors.Join(errs...)
}

// LogPath returns the configured log path or the default location.
func (c Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return paths.DefaultLogPath()
}
