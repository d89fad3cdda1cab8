package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Import  ImportConfig  `yaml:"import" mapstructure:"import"`
	Select  SelectConfig  `yaml:"select" mapstructure:"select"`
	Analyze AnalyzeConfig `yaml:"analyze" mapstructure:"analyze"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ImportConfig configures dataset ingestion.
type ImportConfig struct {
	Charset   string `yaml:"charset" mapstructure:"charset"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
	Sheet     string `yaml:"sheet" mapstructure:"sheet"`
}

// SelectConfig holds defaults for selection runs.
type SelectConfig struct {
	Strategy   string `yaml:"strategy" mapstructure:"strategy"`
	Count      int    `yaml:"count" mapstructure:"count"`
	ConfigPath string `yaml:"config_path" mapstructure:"config_path"`
}

// AnalyzeConfig configures dataset analysis.
type AnalyzeConfig struct {
	Bins int `yaml:"bins" mapstructure:"bins"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
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
	v.SetConfigName("storeplan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STOREPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("import.charset", "")
	v.SetDefault("import.delimiter", "")
	v.SetDefault("import.sheet", "")
	v.SetDefault("select.strategy", "revenue_focus")
	v.SetDefault("select.count", 10)
	v.SetDefault("select.config_path", "")
	v.SetDefault("analyze.bins", 10)
	v.SetDefault("output.format", "table")

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

// Validate checks configuration bounds before a run.
func (c *Config) Validate() error {
	var errs []string

	if c.Select.Count < 0 {
		errs = append(errs, "select.count must be >= 0")
	}
	if c.Analyze.Bins < 1 {
		errs = append(errs, "analyze.bins must be >= 1")
	}
	switch c.Output.Format {
	case "table", "csv", "json":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be one of table, csv, json (got %q)", c.Output.Format))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
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
