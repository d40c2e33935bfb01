package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the swiget CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	Registry string `mapstructure:"registry"`
	Progress string `mapstructure:"progress"`
	DestDir  string `mapstructure:"dest_dir"`
}

// Init loads the config file and environment. A missing config file is
// not an error.
func Init() {
	if dir, err := Dir(); err == nil {
		viper.AddConfigPath(dir)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("SWIGET")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	//nolint:errcheck // a missing config file is fine
	viper.ReadInConfig()
}

// Load returns the unmarshaled configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
