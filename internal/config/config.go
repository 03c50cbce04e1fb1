package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

const (
	FileName    = "pagesmith.yaml"
	EnvPrefix   = "PAGESMITH"
	DefaultAddr = "127.0.0.1:4321"
)

type Config struct {
	Source   string        `mapstructure:"source"`
	Out      string        `mapstructure:"out"`
	Theme    core.Theme    `mapstructure:"theme"`
	Settings core.Settings `mapstructure:"settings"`
	Server   ServerConfig  `mapstructure:"server"`
	Log      LogConfig     `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LoadOptions struct {
	// Dir is the project directory. Relative paths resolve against it.
	Dir string
	// File overrides the pagesmith.yaml lookup in Dir.
	File string
	// Flags are bound over file and environment values when set.
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"source":     "source",
	"out":        "out",
	"addr":       "server.addr",
	"theme":      "theme.mode",
	"title":      "settings.title",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "page.psl")
	v.SetDefault("out", "dist")
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// registered so env overrides reach them
	for _, key := range []string{"mode", "primary", "accent", "background", "surface", "text", "radius", "font"} {
		v.SetDefault("theme."+key, "")
	}
	for _, key := range []string{"title", "description", "lang"} {
		v.SetDefault("settings."+key, "")
	}
}

func Load(opts LoadOptions) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := loadEnvFile(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Source = resolvePath(dir, cfg.Source)
	cfg.Out = resolvePath(dir, cfg.Out)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Theme.Mode {
	case "", core.ThemeLight, core.ThemeDark:
	default:
		return fmt.Errorf("theme.mode must be %q or %q, got %q", core.ThemeLight, core.ThemeDark, c.Theme.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
