// Package config loads process settings from an env file, a YAML file or
// the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	DBDSN             string `mapstructure:"DB_DSN"`
	RiskFreeRate      string `mapstructure:"RISK_FREE_RATE"`
	SP500Rate         string `mapstructure:"SP500_RATE"`
	NASDAQRate        string `mapstructure:"NASDAQ_RATE"`
	MaxScheduleLength int    `mapstructure:"MAX_SCHEDULE_LENGTH"`
	BatchConcurrency  int    `mapstructure:"BATCH_CONCURRENCY"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MetricsAddr       string `mapstructure:"METRICS_ADDR"`
}

// Rates is the parsed form of the decimal settings.
type Rates struct {
	RiskFree decimal.Decimal
	SP500    decimal.Decimal
	NASDAQ   decimal.Decimal
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DSN", "")
	v.SetDefault("RISK_FREE_RATE", "0.02")
	v.SetDefault("SP500_RATE", "0.10")
	v.SetDefault("NASDAQ_RATE", "0.12")
	v.SetDefault("MAX_SCHEDULE_LENGTH", 100000)
	v.SetDefault("BATCH_CONCURRENCY", 4)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ADDR", "")
}

// Load reads dcasim.env from the working directory when present; environment
// variables always win.
func Load() (Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("dcasim")
	v.SetConfigType("env")
	return load(v)
}

// LoadFromFile reads an explicit config file; its type follows the extension.
func LoadFromFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c Config) Rates() (Rates, error) {
	var r Rates
	var err error
	if r.RiskFree, err = parseRate("RISK_FREE_RATE", c.RiskFreeRate); err != nil {
		return Rates{}, err
	}
	if r.SP500, err = parseRate("SP500_RATE", c.SP500Rate); err != nil {
		return Rates{}, err
	}
	if r.NASDAQ, err = parseRate("NASDAQ_RATE", c.NASDAQRate); err != nil {
		return Rates{}, err
	}
	return r, nil
}

func parseRate(key, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a decimal: %w", key, s, err)
	}
	return d, nil
}
