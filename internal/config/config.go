package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputPath      string `mapstructure:"input_path" yaml:"input_path"`
	ImagePath      string `mapstructure:"image_path" yaml:"image_path"`
	LengthColumn   string `mapstructure:"length_column" yaml:"length_column"`
	GasColumn      string `mapstructure:"gas_column" yaml:"gas_column"`
	SmallThreshold int    `mapstructure:"small_threshold" yaml:"small_threshold"`
	MaxRows        int    `mapstructure:"max_rows" yaml:"max_rows"`
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("GASPLOT")
	v.AutomaticEnv()

	// Defaults match the benchmark harness output.
	v.SetDefault("input_path", "gas_results.csv")
	v.SetDefault("image_path", "gas_analysis.png")
	v.SetDefault("length_column", "Message Length")
	v.SetDefault("gas_column", "Gas Used")
	v.SetDefault("small_threshold", 200)
	v.SetDefault("max_rows", 100000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".gasplot"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults and env still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if cfgFile != "" {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.gasplot/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".gasplot")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
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
