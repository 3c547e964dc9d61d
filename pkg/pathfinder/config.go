package pathfinder

import (
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/pathfinder/pkg/lifecycle"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("pathfinder: invalid config")

// DefaultName names instances created without one.
const DefaultName = "pathfinder"

// Config holds the settings of a Pathfinder instance.
type Config struct {
	// Name identifies the instance in logs and plugin config.
	Name string

	// ShutdownTimeout bounds how long Stop waits for the loop goroutine.
	ShutdownTimeout time.Duration
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = lifecycle.ShutdownTimeout
	}
}

// Validate checks the config after defaults are applied.
func (c *Config) Validate() error {
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: shutdown timeout must not be negative, got %s", ErrInvalidConfig, c.ShutdownTimeout)
	}
	return nil
}
