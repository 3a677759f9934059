// Package config loads and validates strake configuration from YAML files,
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrInvalid reports a configuration value outside its allowed range.
	ErrInvalid = errors.New("config: invalid value")
	// ErrMissing reports a required configuration value that was not set.
	ErrMissing = errors.New("config: missing value")
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Series   SeriesConfig   `mapstructure:"series"`
	Costs    CostConfig     `mapstructure:"costs"`
	Backtest BacktestConfig `mapstructure:"backtest"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// LogConfig controls log level, destination and file rotation.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Output     string `mapstructure:"output"` // "console", "file" or "both"
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// SeriesConfig bounds the bar series built by the loader and stream commands.
type SeriesConfig struct {
	Name        string        `mapstructure:"name"`
	Period      time.Duration `mapstructure:"period"`
	MaxBarCount int           `mapstructure:"max_bar_count"` // 0 keeps every bar
}

// CostConfig parameterizes the cost models applied to simulated trades.
type CostConfig struct {
	TransactionFee float64 `mapstructure:"transaction_fee"` // ratio of traded value per trade
	FixedFee       float64 `mapstructure:"fixed_fee"`       // absolute cost per trade
	BorrowingFee   float64 `mapstructure:"borrowing_fee"`   // ratio per period a short stays open
}

// BacktestConfig selects the data, strategy and sizing for a backtest run.
type BacktestConfig struct {
	Data          string  `mapstructure:"data"`
	Format        string  `mapstructure:"format"` // "csv", "json" or "parquet"; empty infers from extension
	Strategy      string  `mapstructure:"strategy"`
	Side          string  `mapstructure:"side"` // "buy" or "sell"
	Amount        float64 `mapstructure:"amount"`
	ShortWindow   int     `mapstructure:"short_window"`
	LongWindow    int     `mapstructure:"long_window"`
	RSIWindow     int     `mapstructure:"rsi_window"`
	RSILower      float64 `mapstructure:"rsi_lower"`
	RSIUpper      float64 `mapstructure:"rsi_upper"`
	UnstableBars  int     `mapstructure:"unstable_bars"`
	Confidence    float64 `mapstructure:"confidence"`     // expected shortfall confidence level
	InitialAmount float64 `mapstructure:"initial_amount"` // starting cash for cost reporting
}

// MetricsConfig holds metrics exporter configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.SetEnvPrefix("STRAKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Output:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Series: SeriesConfig{
			Name:   "series",
			Period: time.Minute,
		},
		Backtest: BacktestConfig{
			Strategy:      "sma-cross",
			Side:          "buy",
			Amount:        1,
			ShortWindow:   5,
			LongWindow:    20,
			RSIWindow:     14,
			RSILower:      30,
			RSIUpper:      70,
			Confidence:    0.95,
			InitialAmount: 1000,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":2112",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Log validation
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level must be debug, info, warn or error, got %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("%w: log output must be console, file or both, got %q", ErrInvalid, c.Log.Output)
	}
	if (c.Log.Output == "file" || c.Log.Output == "both") && c.Log.File == "" {
		return fmt.Errorf("%w: log file required when output is %q", ErrMissing, c.Log.Output)
	}

	// Series validation
	if c.Series.Period <= 0 {
		return fmt.Errorf("%w: series period must be positive, got %s", ErrInvalid, c.Series.Period)
	}
	if c.Series.MaxBarCount < 0 {
		return fmt.Errorf("%w: max_bar_count cannot be negative, got %d", ErrInvalid, c.Series.MaxBarCount)
	}

	// Cost validation
	if c.Costs.TransactionFee < 0 || c.Costs.TransactionFee >= 1 {
		return fmt.Errorf("%w: transaction_fee must be a ratio in [0, 1), got %f", ErrInvalid, c.Costs.TransactionFee)
	}
	if c.Costs.FixedFee < 0 {
		return fmt.Errorf("%w: fixed_fee cannot be negative, got %f", ErrInvalid, c.Costs.FixedFee)
	}
	if c.Costs.BorrowingFee < 0 {
		return fmt.Errorf("%w: borrowing_fee cannot be negative, got %f", ErrInvalid, c.Costs.BorrowingFee)
	}

	// Backtest validation
	switch c.Backtest.Strategy {
	case "sma-cross", "rsi", "sar":
	default:
		return fmt.Errorf("%w: strategy must be sma-cross, rsi or sar, got %q", ErrInvalid, c.Backtest.Strategy)
	}
	switch c.Backtest.Side {
	case "buy", "sell":
	default:
		return fmt.Errorf("%w: side must be buy or sell, got %q", ErrInvalid, c.Backtest.Side)
	}
	switch c.Backtest.Format {
	case "", "csv", "json", "parquet":
	default:
		return fmt.Errorf("%w: format must be csv, json or parquet, got %q", ErrInvalid, c.Backtest.Format)
	}
	if c.Backtest.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %f", ErrInvalid, c.Backtest.Amount)
	}
	if c.Backtest.ShortWindow <= 0 || c.Backtest.LongWindow <= 0 {
		return fmt.Errorf("%w: window sizes must be positive, got %d and %d",
			ErrInvalid, c.Backtest.ShortWindow, c.Backtest.LongWindow)
	}
	if c.Backtest.Strategy == "sma-cross" && c.Backtest.ShortWindow >= c.Backtest.LongWindow {
		return fmt.Errorf("%w: short_window must be below long_window, got %d and %d",
			ErrInvalid, c.Backtest.ShortWindow, c.Backtest.LongWindow)
	}
	if c.Backtest.RSIWindow <= 0 {
		return fmt.Errorf("%w: rsi_window must be positive, got %d", ErrInvalid, c.Backtest.RSIWindow)
	}
	if c.Backtest.RSILower < 0 || c.Backtest.RSIUpper > 100 || c.Backtest.RSILower >= c.Backtest.RSIUpper {
		return fmt.Errorf("%w: rsi thresholds must satisfy 0 <= lower < upper <= 100, got %f and %f",
			ErrInvalid, c.Backtest.RSILower, c.Backtest.RSIUpper)
	}
	if c.Backtest.UnstableBars < 0 {
		return fmt.Errorf("%w: unstable_bars cannot be negative, got %d", ErrInvalid, c.Backtest.UnstableBars)
	}
	if c.Backtest.Confidence <= 0 || c.Backtest.Confidence >= 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1, got %f", ErrInvalid, c.Backtest.Confidence)
	}
	if c.Backtest.InitialAmount <= 0 {
		return fmt.Errorf("%w: initial_amount must be positive, got %f", ErrInvalid, c.Backtest.InitialAmount)
	}

	// Metrics validation
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics addr required when metrics are enabled", ErrMissing)
	}

	return nil
}
