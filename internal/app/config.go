package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ClassesPath string // .hcl class manifests, a file or a directory

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ClassesPath == "" {
		return nil, errors.New("ClassesPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
