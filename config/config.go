// Package config loads the tabdiff configuration from a TOML file and TABDIFF_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Engine     string       `mapstructure:"engine" validate:"engine"`
	TraceLimit int          `mapstructure:"trace_limit" validate:"gte=0"`
	Serve      ServeConfig  `mapstructure:"serve"`
	Log        LogConfig    `mapstructure:"log"`
	Output     OutputConfig `mapstructure:"output"`
}

// ServeConfig holds the settings of the serve command.
type ServeConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"loglevel"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gt=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// OutputConfig holds presentation settings for terminal output.
type OutputConfig struct {
	Style string `mapstructure:"style" validate:"oneof=auto dark light notty"` // glamour style
	Color bool   `mapstructure:"color"`
	Width int    `mapstructure:"width" validate:"gte=20"`
}

// New returns a viper instance with defaults and environment overrides set up. Callers may bind
// command line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("engine", "myers")
	v.SetDefault("trace_limit", 1<<25)
	v.SetDefault("serve.addr", "localhost:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("output.style", "auto")
	v.SetDefault("output.color", true)
	v.SetDefault("output.width", 80)

	v.SetConfigType("toml")
	v.SetEnvPrefix("TABDIFF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the configuration file into v and returns the validated configuration. The file is
// path if set, otherwise $TABDIFF_CONFIG, otherwise config.toml in $HOME/.config/tabdiff. Only an
// explicitly named file must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv("TABDIFF_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tabdiff"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("engine", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "myers", "znkr":
			return true
		default:
			return false
		}
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := zerolog.ParseLevel(strings.ToLower(fl.Field().String()))
		return err == nil
	})
	return v
}()

// Validate checks c for invalid values.
func Validate(c Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("invalid config value %s=%v (%s)", fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return errors.Join(errs...)
}
