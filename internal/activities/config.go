package activities

import (
	"time"

	"activity-signup/internal/common/config"
)

type Config struct {
	// EnforceCapacity rejects signups once a roster reaches max_participants.
	EnforceCapacity bool
	// PublishTimeout bounds how long a roster event publish may take.
	PublishTimeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		EnforceCapacity: cfg.Registry.EnforceCapacity,
		PublishTimeout:  3 * time.Second,
	}
}
