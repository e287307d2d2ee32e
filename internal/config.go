package internal

import (
	"github.com/spf13/viper"
)

// Config holds application configuration. Values come from defaults,
// then environment variables with the CURSOR_THREADS_ prefix.
type Config struct {
	StoragePath string `mapstructure:"storage_path"`
	ListenAddr  string `mapstructure:"listen_addr"`
	LogLevel    string `mapstructure:"log_level"`
}

// LoadConfig loads configuration from the environment
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CURSOR_THREADS")
	v.AutomaticEnv()

	v.SetDefault("storage_path", "")
	v.SetDefault("listen_addr", "127.0.0.1:8732")
	v.SetDefault("log_level", "info")

	// AutomaticEnv alone does not surface env vars through Unmarshal,
	// so bind each key explicitly.
	for _, key := range []string{"storage_path", "listen_addr", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	SetLogLevel(cfg.LogLevel)
	return &cfg, nil
}
