package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string such as "1h" or "720h". When the
// value does not parse the fallback is returned, so a bad config entry
// degrades to a sane default instead of aborting startup.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("invalid duration, using fallback")
		return fallback
	}
	return d
}
