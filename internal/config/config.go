// Package config holds gitnuke's resolved configuration, mirroring the
// teacher's internal/cli package: a flat Config struct with a
// Validate() error method, populated by cobra/pflag binding in
// cmd/gitnuke and optionally pre-seeded from a config file (see
// configfile.go).
package config

import "fmt"

// Config holds every setting a gitnuke invocation needs, after flags,
// config file, and defaults have all been merged.
type Config struct {
	Directory           string
	Root                string
	MinFileSize         int64
	NumThreads          int
	Benchmark           bool
	PrintGlobMatches    bool
	IncludeGlobalIgnore bool
	PrintErrors         bool
	GitnukeFile         bool
	NoColor             bool
}

// Validate checks that the config is internally consistent and returns
// an error describing the first problem found, the way cli.Config.Validate
// does for gogrep's flag set.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("no directory specified")
	}
	if c.MinFileSize < 0 {
		return fmt.Errorf("invalid --min-file-size: %d", c.MinFileSize)
	}
	if c.NumThreads < 0 {
		return fmt.Errorf("invalid --num-threads: %d", c.NumThreads)
	}
	return nil
}
