package config

import "fmt"

// OutputConfig controls where extracted allocations are written.
type OutputConfig struct {
	// Path is the destination file. Empty disables file output.
	Path string `json:"path"`
	// Format selects the writer: "csv" or "json".
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "csv"
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	if c.Format != "csv" && c.Format != "json" {
		return fmt.Errorf("unknown output format %s", c.Format)
	}
	return nil
}
