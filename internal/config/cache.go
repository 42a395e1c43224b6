package config

import "time"

// CacheConfig defines settings for the response cache middleware.  When
// Enabled is false or no Redis client is available, caching is a no-op.
// Entries are short-lived: the timetable changes with every booking, so
// the cache only absorbs read bursts between writes and every write
// invalidates its date's entries eagerly anyway.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getEnv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getEnv("CACHE_TTL", "30s")),
		Prefix:  getEnv("CACHE_PREFIX", "cache"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
