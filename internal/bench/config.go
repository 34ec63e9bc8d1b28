package bench

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Config describes one benchmark run. It is read from a TOML file and
// then overridden by command line flags.
type Config struct {
	Capacities      []int    `toml:"capacities"`
	Rounds          int      `toml:"rounds"`
	Implementations []string `toml:"implementations"`
	Format          string   `toml:"format"`
	Out             string   `toml:"out"`
	LogLevel        string   `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Capacities:      []int{1, 2, 4, 8, 16, 32},
		Rounds:          100_000,
		Implementations: Names(),
		Format:          FormatMarkdown,
		LogLevel:        "info",
	}
}

// LoadConfig reads a TOML file over the defaults. Keys the file sets
// replace the defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("bench: reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("bench: unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

var (
	errNoCapacities = errors.New("bench: no capacities")
	errNoImpls      = errors.New("bench: no implementations")
)

// Validate checks that the configuration can be run.
func (c *Config) Validate() error {
	if len(c.Capacities) == 0 {
		return errNoCapacities
	}
	for _, n := range c.Capacities {
		if n < 1 {
			return fmt.Errorf("bench: capacity %d must be positive", n)
		}
	}
	if c.Rounds < 1 {
		return fmt.Errorf("bench: rounds %d must be positive", c.Rounds)
	}
	if len(c.Implementations) == 0 {
		return errNoImpls
	}
	for _, name := range c.Implementations {
		if _, err := Lookup(name); err != nil {
			return err
		}
	}
	switch c.Format {
	case FormatMarkdown, FormatText:
	default:
		return fmt.Errorf("bench: unknown format %q", c.Format)
	}
	return nil
}
