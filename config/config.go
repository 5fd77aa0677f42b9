package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the CLI needs to reach the StudyCopilot backend.
type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SessionFile    string        `mapstructure:"session_file"`
	AccessToken    string        `mapstructure:"STUDYCOPILOT_TOKEN"`
	LogFile        string        `mapstructure:"log_file"`
	Debug          bool          `mapstructure:"debug"`
}

const (
	DefaultBaseURL        = "http://127.0.0.1:8000/api"
	DefaultRequestTimeout = 60 * time.Second
	DefaultSessionFile    = ".studycopilot/session"
	DefaultLogFile        = ".studycopilot/client.log"
)

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_base_url", DefaultBaseURL)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("session_file", DefaultSessionFile)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("debug", false)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()
	v.BindEnv("STUDYCOPILOT_TOKEN")
	v.BindEnv("api_base_url", "STUDYCOPILOT_API_URL")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	return &config, nil
}
