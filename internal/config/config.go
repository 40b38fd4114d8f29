package config

import (
	"fmt"
	"os"
	"strconv"

	"titanic/internal"
	"titanic/internal/errors"
)

// Default values used when neither flags nor environment override them.
const (
	DefaultInputPath     = "./data/Titanic.csv"
	DefaultOutputDir     = "./output"
	DefaultHistogramBins = 30
	DefaultAddr          = ":8080"
	DefaultLogLevel      = "INFO"
)

// MaxHistogramBins bounds the age histogram resolution.
const MaxHistogramBins = 1000

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Output   OutputConfig
	Chart    ChartConfig
	Server   ServerConfig
	LogLevel string

	// envErrors holds unparsable environment values keyed by the flag
	// that can override them.
	envErrors map[string]error
}

// DataConfig holds the input dataset location
type DataConfig struct {
	InputPath string
}

// OutputConfig holds artifact settings
type OutputConfig struct {
	Dir  string
	HTML bool
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	HistogramBins int
}

// ServerConfig holds settings for the serve subcommand
type ServerConfig struct {
	Addr string
}

// Load builds the configuration from defaults and environment variables.
// Nothing is validated here: flags may still replace any value, so callers
// run Validate once flags are applied. Unparsable numeric or boolean
// variables are remembered and reported by Validate unless the matching
// flag overrides them.
func Load() *Config {
	config := &Config{
		Data: DataConfig{
			InputPath: getEnvOrDefault("TITANIC_INPUT", DefaultInputPath),
		},
		Output: OutputConfig{
			Dir: getEnvOrDefault("TITANIC_OUTPUT_DIR", DefaultOutputDir),
		},
		Server: ServerConfig{
			Addr: getEnvOrDefault("TITANIC_ADDR", DefaultAddr),
		},
		LogLevel:  getEnvOrDefault("LOG_LEVEL", DefaultLogLevel),
		envErrors: make(map[string]error),
	}

	var err error
	if config.Output.HTML, err = getEnvBoolOrDefault("TITANIC_HTML", false); err != nil {
		config.envErrors["html"] = err
	}
	if config.Chart.HistogramBins, err = getEnvIntOrDefault("TITANIC_HIST_BINS", DefaultHistogramBins); err != nil {
		config.envErrors["bins"] = err
	}

	return config
}

// FlagSet records that a command-line flag replaced the environment value,
// discarding any parse error for it.
func (c *Config) FlagSet(flag string) {
	delete(c.envErrors, flag)
}

// Validate checks the final settings after flags are applied.
func (c *Config) Validate() error {
	for _, flag := range []string{"html", "bins"} {
		if err := c.envErrors[flag]; err != nil {
			return errors.WithCode(errors.CodeConfigInvalid, err)
		}
	}
	if c.Data.InputPath == "" {
		return errors.ConfigInvalid("input path is required")
	}
	if c.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if c.Chart.HistogramBins < 1 || c.Chart.HistogramBins > MaxHistogramBins {
		return errors.ConfigInvalid(fmt.Sprintf("histogram bins must be between 1 and %d, got %d",
			MaxHistogramBins, c.Chart.HistogramBins))
	}
	if _, err := internal.ParseLogLevel(c.LogLevel); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// Logger builds the root logger for the configured level.
func (c *Config) Logger() *internal.Logger {
	level, err := internal.ParseLogLevel(c.LogLevel)
	if err != nil {
		level = internal.LogLevelInfo
	}
	return internal.NewLogger(level)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return intValue, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return boolValue, nil
}
