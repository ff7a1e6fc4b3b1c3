package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Engine  EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// InputConfig configures how sales sheets are read.
type InputConfig struct {
	SheetName    string `yaml:"sheet_name" mapstructure:"sheet_name"`
	SheetIndex   int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	SkipRows     int    `yaml:"skip_rows" mapstructure:"skip_rows"`
	CSVCharset   string `yaml:"csv_charset" mapstructure:"csv_charset"`
	CSVDelimiter string `yaml:"csv_delimiter" mapstructure:"csv_delimiter"`
}

// OutputConfig configures result files.
type OutputConfig struct {
	Format       string `yaml:"format" mapstructure:"format"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	DetailSheet  string `yaml:"detail_sheet" mapstructure:"detail_sheet"`
	SummarySheet string `yaml:"summary_sheet" mapstructure:"summary_sheet"`
}

// EngineConfig configures the commission engine.
type EngineConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// CatalogConfig points at an optional category catalog extension.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMMISSION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("input.sheet_index", 0)
	v.SetDefault("input.csv_charset", "utf-8")
	v.SetDefault("input.csv_delimiter", ",")
	v.SetDefault("output.format", "xlsx")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.detail_sheet", "提成明细")
	v.SetDefault("output.summary_sheet", "销售员汇总")
	v.SetDefault("engine.concurrency", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. mode is one of
// "calculate", "validate", "summary" or "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "calculate", "validate", "summary", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Output.Format {
	case "xlsx", "csv":
	default:
		errs = append(errs, fmt.Sprintf("output.format %q must be xlsx or csv", c.Output.Format))
	}
	if c.Engine.Concurrency < 1 || c.Engine.Concurrency > 64 {
		errs = append(errs, fmt.Sprintf("engine.concurrency must be between 1 and 64, got %d", c.Engine.Concurrency))
	}
	if utf8.RuneCountInString(c.Input.CSVDelimiter) > 1 {
		errs = append(errs, fmt.Sprintf("input.csv_delimiter %q must be a single character", c.Input.CSVDelimiter))
	}
	if c.Input.SheetIndex < 0 || c.Input.SkipRows < 0 {
		errs = append(errs, "input.sheet_index and input.skip_rows must be >= 0")
	}

	if mode == "serve" {
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.MaxUploadBytes <= 0 {
			errs = append(errs, "server.max_upload_bytes must be > 0")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(errs, "; "))
	}
	return nil
}

// Delimiter returns the configured CSV delimiter, or 0 for the reader default.
func (c InputConfig) Delimiter() rune {
	for _, r := range c.CSVDelimiter {
		return r
	}
	return 0
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
