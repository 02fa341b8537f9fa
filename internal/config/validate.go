package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minWatchInterval = 100 * time.Millisecond // below this, stat noise dominates
	maxWatchInterval = 1 * time.Hour

	minPublishRate = 0.01 // one publish per 100s at the slowest
	maxPublishRate = 50   // Discord rate limits long before this

	minPagerTTL = 10 * time.Second

	maxPrefixLength = 5 // longer prefixes make text commands unusable
)

// Validate checks the configuration values against acceptable ranges and
// returns all failures at once via errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateWatchInterval(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validatePublishRate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validatePagerTTL(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateCommandPrefix(); err != nil {
		errs = append(errs, err)
	}
	if c.ExtensionsDir == "" {
		errs = append(errs, fmt.Errorf("EXTENSIONS_DIR cannot be empty"))
	}
	if c.DataDir == "" && c.DatabaseURL == "" {
		errs = append(errs, fmt.Errorf("either DATA_DIR or DATABASE_URL must be set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

// validateWatchInterval ensures the manifest poll interval is within bounds
func (c *Config) validateWatchInterval() error {
	if c.WatchInterval < minWatchInterval {
		return fmt.Errorf(
			"WATCH_INTERVAL must be at least %v, got %v (hint: the default 1s is fine for development)",
			minWatchInterval, c.WatchInterval,
		)
	}

	if c.WatchInterval > maxWatchInterval {
		return fmt.Errorf(
			"WATCH_INTERVAL must be at most %v, got %v",
			maxWatchInterval, c.WatchInterval,
		)
	}

	return nil
}

// validatePublishRate ensures the publish rate limit is sane
func (c *Config) validatePublishRate() error {
	if c.PublishRate < minPublishRate || c.PublishRate > maxPublishRate {
		return fmt.Errorf(
			"PUBLISH_RATE must be between %v and %v publishes per second, got %v",
			minPublishRate, maxPublishRate, c.PublishRate,
		)
	}

	return nil
}

// validateCommandPrefix ensures the text command prefix is short and free of
// whitespace. An empty prefix is valid and disables text commands.
func (c *Config) validateCommandPrefix() error {
	if len(c.CommandPrefix) > maxPrefixLength {
		return fmt.Errorf(
			"COMMAND_PREFIX must be at most %d characters, got %d",
			maxPrefixLength, len(c.CommandPrefix),
		)
	}

	if strings.ContainsAny(c.CommandPrefix, " \t\n") {
		return fmt.Errorf("COMMAND_PREFIX cannot contain whitespace")
	}

	return nil
}

// validatePagerTTL ensures paginator menus live long enough to be usable
func (c *Config) validatePagerTTL() error {
	if c.PagerTTL < minPagerTTL {
		return fmt.Errorf(
			"PAGER_TTL must be at least %v, got %v",
			minPagerTTL, c.PagerTTL,
		)
	}

	return nil
}
