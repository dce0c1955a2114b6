package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustRequired stops the process when a mandatory setting is missing.
func (c *Config) MustRequired() {
	MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	MustNonEmpty(c.JWTSecret, "JWT_SECRET")
}
