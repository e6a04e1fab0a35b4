package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/unirank-cli/internal/view"
)

// EnvPrefix is prepended to every environment override, e.g. UNIRANK_DATA_PATH.
const EnvPrefix = "UNIRANK"

// Global configuration structure.
type Global struct {
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	Addr     string `mapstructure:"addr" yaml:"addr"`

	// Figure size for rendered charts
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`

	// Initial control values for the dashboard and CLI
	DefaultMinCount  int    `mapstructure:"default_min_count" yaml:"default_min_count"`
	DefaultTopN      int    `mapstructure:"default_top_n" yaml:"default_top_n"`
	DefaultChartType string `mapstructure:"default_chart_type" yaml:"default_chart_type"`
	DefaultOrder     string `mapstructure:"default_order" yaml:"default_order"`

	CacheCharts bool   `mapstructure:"cache_charts" yaml:"cache_charts"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		DataPath:         "World University Rankings 2023.csv",
		Addr:             "127.0.0.1:8501",
		ChartWidth:       1024,
		ChartHeight:      640,
		DefaultMinCount:  1,
		DefaultTopN:      20,
		DefaultChartType: "bar",
		DefaultOrder:     "descending",
		CacheCharts:      true,
		LogLevel:         "info",
	}
}

// Keys lists the settable configuration keys in display order.
func Keys() []string {
	return []string{
		"data_path", "addr", "chart_width", "chart_height",
		"default_min_count", "default_top_n", "default_chart_type", "default_order",
		"cache_charts", "log_level",
	}
}

// Dir returns ~/.unirank.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".unirank"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.unirank/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("default_min_count", d.DefaultMinCount)
	v.SetDefault("default_top_n", d.DefaultTopN)
	v.SetDefault("default_chart_type", d.DefaultChartType)
	v.SetDefault("default_order", d.DefaultOrder)
	v.SetDefault("cache_charts", d.CacheCharts)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Set assigns key from its string form, as typed on the command line.
func (c *Global) Set(key, value string) error {
	switch key {
	case "data_path":
		c.DataPath = value
	case "addr":
		c.Addr = value
	case "chart_width", "chart_height", "default_min_count", "default_top_n":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		switch key {
		case "chart_width":
			c.ChartWidth = n
		case "chart_height":
			c.ChartHeight = n
		case "default_min_count":
			c.DefaultMinCount = n
		default:
			c.DefaultTopN = n
		}
	case "default_chart_type":
		c.DefaultChartType = value
	case "default_order":
		c.DefaultOrder = value
	case "cache_charts":
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			c.CacheCharts = true
		case "false", "0", "no", "off":
			c.CacheCharts = false
		default:
			return fmt.Errorf("cache_charts must be true or false, got %q", value)
		}
	case "log_level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", s)
}

// SlogLevel returns the configured level, falling back to info.
func (c *Global) SlogLevel() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ViewDefaults returns the initial control values. Unparseable settings fall
// back to the built-in defaults.
func (c *Global) ViewDefaults() view.Params {
	p := view.Params{
		MinCount:  view.ClampMinCount(c.DefaultMinCount),
		ChartType: view.Bar,
		TopN:      c.DefaultTopN,
		Order:     view.Descending,
	}
	if p.TopN < 1 {
		p.TopN = view.DefaultTopN
	}
	if ct, err := view.ParseChartType(c.DefaultChartType); err == nil {
		p.ChartType = ct
	}
	if o, err := view.ParseOrder(c.DefaultOrder); err == nil {
		p.Order = o
	}
	return p
}
