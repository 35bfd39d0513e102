package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the source workbook.
type InputConfig struct {
	Workbook string `yaml:"workbook" mapstructure:"workbook"`
}

// OutputConfig configures where pipeline results are written.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"` // optional
	Manifest   string `yaml:"manifest" mapstructure:"manifest"`       // optional
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
	v.SetEnvPrefix("OBT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.workbook", "data/data.xlsx")
	v.SetDefault("output.dir", "data")
	v.SetDefault("output.sqlite_path", "")
	v.SetDefault("output.manifest", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

// Validate checks the settings a pipeline run depends on.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Input.Workbook) == "" {
		problems = append(problems, "input.workbook is required")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		problems = append(problems, "output.dir is required")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		problems = append(problems, "log.format must be console or json")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
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
