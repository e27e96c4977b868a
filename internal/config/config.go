package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/yannn/strictdata/internal/logging"
	"github.com/yannn/strictdata/pkg/adapters/memory"
	"github.com/yannn/strictdata/pkg/adapters/redis"
	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/enum"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of strictdata.yaml.
type Config struct {
	Log         LogConfig             `mapstructure:"log"`
	Server      ServerConfig          `mapstructure:"server"`
	SchemaFiles []string              `mapstructure:"schema_files"`
	Classes     map[string]string     `mapstructure:"classes"`
	Enums       map[string]EnumConfig `mapstructure:"enums"`
	EagerEnums  bool                  `mapstructure:"eager_enums"`

	// dir is the directory of the loaded file; relative schema files resolve against it.
	dir string
}

// LogConfig selects the logger level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP inspection API.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// EnumConfig defines one named enum provider: either static values or a Redis set.
type EnumConfig struct {
	Values []any        `mapstructure:"values"`
	Redis  *RedisConfig `mapstructure:"redis"`
}

// RedisConfig points an enum at the members of a Redis SET.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
	Prefix   string `mapstructure:"prefix"`
	Numeric  bool   `mapstructure:"numeric"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: string(logging.FormatText)},
		Server: ServerConfig{Addr: ":8080", Metrics: true},
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML configuration bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	for _, name := range sortedNames(c.Enums) {
		e := c.Enums[name]
		switch {
		case e.Redis != nil && len(e.Values) > 0:
			errs = append(errs, fmt.Errorf("enum %s: values and redis are mutually exclusive", name))
		case e.Redis == nil && len(e.Values) == 0:
			errs = append(errs, fmt.Errorf("enum %s: no values and no redis set", name))
		case e.Redis != nil && e.Redis.Key == "":
			errs = append(errs, fmt.Errorf("enum %s: redis key is required", name))
		}
	}
	return errors.Join(errs...)
}

// Logger builds the configured logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.NewWithWriter(w, level, logging.Format(c.Log.Format))
}

// Source combines the inline classes and every schema file into one annotation source.
// Inline classes take precedence.
func (c *Config) Source() (annotation.Source, error) {
	chain := annotation.Chain{annotation.MapSource(c.Classes)}
	for _, f := range c.SchemaFiles {
		if !filepath.IsAbs(f) && c.dir != "" {
			f = filepath.Join(c.dir, f)
		}
		src, err := annotation.LoadFile(f)
		if err != nil {
			return nil, err
		}
		chain = append(chain, src)
	}
	return chain, nil
}

// Providers builds the enum provider registry.
func (c *Config) Providers() *enum.Registry {
	static := make(map[string][]any)
	for name, e := range c.Enums {
		if e.Redis == nil {
			static[name] = e.Values
		}
	}
	reg := memory.NewRegistry(static)

	for _, name := range sortedNames(c.Enums) {
		r := c.Enums[name].Redis
		if r == nil {
			continue
		}
		var opts []redis.Option
		if r.Prefix != "" {
			opts = append(opts, redis.WithPrefix(r.Prefix))
		}
		if r.Numeric {
			opts = append(opts, redis.WithNumeric())
		}
		reg.Register(name, redis.New(r.Addr, r.Password, r.DB, r.Key, opts...).Factory())
	}
	return reg
}

func sortedNames(m map[string]EnumConfig) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
