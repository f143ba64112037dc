package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for required fields and obviously broken
// values, collecting every problem into one error.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Dedrone.BaseURL == "" {
		errs = append(errs, "dedrone.base_url is required")
	}
	if len(cfg.Zones) == 0 {
		errs = append(errs, "zones must not be empty")
	}
	for label, addr := range cfg.Zones {
		if label == "" {
			errs = append(errs, "zones: empty label")
		}
		if addr == "" {
			errs = append(errs, fmt.Sprintf("zones.%s: chat id is required", label))
		}
	}
	if cfg.Engine.AlertWorkers < 0 {
		errs = append(errs, "engine.alert_workers must not be negative")
	}
	if cfg.Engine.ZoneParallelism < 0 {
		errs = append(errs, "engine.zone_parallelism must not be negative")
	}
	if cfg.Engine.QueueDepth < 0 {
		errs = append(errs, "engine.queue_depth must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
