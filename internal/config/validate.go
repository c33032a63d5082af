package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganize() error {
	switch c.Organize.ConflictPolicy {
	case "skip", "overwrite", "rename":
	default:
		return fmt.Errorf("organize.conflict_policy must be one of skip, overwrite, rename (got %q)", c.Organize.ConflictPolicy)
	}
	switch c.Organize.Layout {
	case "mirror", "flatten":
	default:
		return fmt.Errorf("organize.layout must be mirror or flatten (got %q)", c.Organize.Layout)
	}
	if c.Organize.FreeSpaceFloorMiB < 0 {
		return errors.New("organize.free_space_floor_mib must not be negative")
	}
	return nil
}

func (c *Config) validateSearch() error {
	for _, ext := range c.Search.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("search.extensions entry %q is not a file extension", ext)
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.RetentionDays < 0 {
		return errors.New("history.retention_days must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}
