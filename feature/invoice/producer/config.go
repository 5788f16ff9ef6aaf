package producer

import "time"

// Config holds provider invocation settings.
type Config struct {
	// TimeoutSeconds bounds a single provider call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Workers is the batch pool size.
	Workers int `mapstructure:"workers" default:"4"`
	// Prefix is the object key prefix extraction payloads live under.
	Prefix string `mapstructure:"prefix" default:"extractions"`
}

// Timeout returns the per-call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PoolSize returns the worker count, defaulting when unset.
func (c Config) PoolSize() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}
