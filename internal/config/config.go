package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

// Config is loaded from the environment (and .env) via koanf. api_token and
// username identify the acting editor on every call to the warehouse service.
type Config struct {
	APIBaseURL string        `koanf:"api_base_url"`
	APIToken   string        `koanf:"api_token"`
	Username   string        `koanf:"username"`
	Timeout    time.Duration `koanf:"timeout"`
	LogFile    string        `koanf:"log_file"`
	Debug      bool          `koanf:"debug"`
}

func New() (Config, error) {
	cfg := Config{
		Timeout: 20 * time.Second,
		LogFile: "./shm-console.log",
		Debug:   false,
	}

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
