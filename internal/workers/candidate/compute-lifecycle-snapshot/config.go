// internal/workers/candidate/compute-lifecycle-snapshot/config.go
package computelifecyclesnapshot

import "time"

type Config struct {
	Timeout time.Duration
	// Now is the evaluation clock; nil means time.Now in UTC.
	Now func() time.Time
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}
