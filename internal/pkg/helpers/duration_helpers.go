package helpers

import (
	"time"

	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

// ParseDuration parses a duration string, falling back to a default on
// empty or malformed input
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}
