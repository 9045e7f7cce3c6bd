package main

import (
	"fmt"

	"github.com/phrazzld/tasktracker/internal/config"
)

// loadAppConfig loads the application configuration from .env, config.yaml
// and TASKTRACKER_* environment variables.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
