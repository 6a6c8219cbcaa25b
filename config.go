package main

import (
	_ "embed"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// MarketConfig controls where the base rate comes from and how it is
// cached between runs.
type MarketConfig struct {
	APIURL       string `yaml:"api_url" json:"api_url"`
	CacheFile    string `yaml:"cache_file" json:"cache_file"`
	RedisAddr    string `yaml:"redis_addr" json:"redis_addr"` // optional shared cache; empty keeps the file cache
	RefreshHours int    `yaml:"refresh_hours" json:"refresh_hours"`
}

// ServerConfig holds the web API settings.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// ScenarioConfig carries the default inputs for console runs. CDIPercent
// overrides the modality's own percentage when positive.
type ScenarioConfig struct {
	Modality            string  `yaml:"modality" json:"modality"`
	CDIPercent          float64 `yaml:"cdi_percent" json:"cdi_percent"`
	InitialCapital      float64 `yaml:"initial_capital" json:"initial_capital"`
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	TargetBalance       float64 `yaml:"target_balance" json:"target_balance"`
	DesiredMonthlyYield float64 `yaml:"desired_monthly_yield" json:"desired_monthly_yield"`
	HorizonMonths       int     `yaml:"horizon_months" json:"horizon_months"`
	ApplyTax            bool    `yaml:"apply_tax" json:"apply_tax"`
	ApplyInflation      bool    `yaml:"apply_inflation" json:"apply_inflation"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Pretty bool   `yaml:"pretty" json:"pretty"`
}

// Config is the root of the YAML configuration file.
type Config struct {
	Market   MarketConfig   `yaml:"market" json:"market"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Scenario ScenarioConfig `yaml:"scenario" json:"scenario"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// RefreshInterval returns the configured rate refresh interval, defaulting
// to 12 hours.
func (c *Config) RefreshInterval() time.Duration {
	if c.Market.RefreshHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.Market.RefreshHours) * time.Hour
}

// NewRateCache builds the configured cache backend: Redis when an address
// is set, otherwise a local file.
func (c *Config) NewRateCache() RateCache {
	if c.Market.RedisAddr != "" {
		return NewRedisRateCache(c.Market.RedisAddr, c.RefreshInterval())
	}
	if c.Market.CacheFile == "" {
		return &FileRateCache{Path: "rate-cache.json"}
	}
	return &FileRateCache{Path: c.Market.CacheFile}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Add a header comment with instructions
	header := []byte(`# Investment Simulator Configuration
# Generated from the last run - feel free to edit manually
#
# VALUE FORMATS
#   Money: plain numbers in BRL (e.g., 30000 = R$ 30.000,00)
#   Percentages: modality rate percentages are whole numbers (105 = 105%)
#
# RUN COMMANDS
#   ./goInvestSim                 Forward simulation from this file
#   ./goInvestSim -reverse        Required-capital solve
#   ./goInvestSim -compare        Race all modalities to the target
#   ./goInvestSim -web            Start the JSON web API
#   ./goInvestSim -help           Show all options
#
# See default-config.yaml for all available options with detailed comments.

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the default configuration embedded in the binary.
func LoadDefaultConfig() (*Config, error) {
	var config Config
	err := yaml.Unmarshal([]byte(defaultConfigYAML), &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigOrDefault prefers the given file and falls back to the embedded
// defaults when it does not exist.
func LoadConfigOrDefault(filename string) (*Config, error) {
	if _, err := os.Stat(filename); err == nil {
		return LoadConfig(filename)
	}
	return LoadDefaultConfig()
}
