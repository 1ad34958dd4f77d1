package config

import "fmt"

// SeriesFile describes one region's production CSV.
type SeriesFile struct {
	// Region is the label used in logs, errors and exported rows.
	Region string `json:"region"`
	// Path is the CSV file location.
	Path string `json:"path"`
	// TimeColumn is the header of the timestamp column.
	TimeColumn string `json:"time_column"`
	// ValueColumn is the header of the production column.
	ValueColumn string `json:"value_column"`
}

// InputConfig locates the two production series and the calendar window they
// are restricted to before modelling.
type InputConfig struct {
	RegionA SeriesFile `json:"region_a"`
	RegionB SeriesFile `json:"region_b"`
	// FromYear and ToYear bound the window inclusively. Zero leaves the
	// corresponding side open.
	FromYear int `json:"from_year"`
	ToYear   int `json:"to_year"`
}

// SetDefaults applies sane defaults.
func (c *InputConfig) SetDefaults() {
	if c.RegionA.Region == "" {
		c.RegionA.Region = "A"
	}
	if c.RegionB.Region == "" {
		c.RegionB.Region = "B"
	}
	for _, f := range []*SeriesFile{&c.RegionA, &c.RegionB} {
		if f.TimeColumn == "" {
			f.TimeColumn = "time"
		}
		if f.ValueColumn == "" {
			f.ValueColumn = "value"
		}
	}
}

// Validate checks mandatory fields.
func (c InputConfig) Validate() error {
	if c.RegionA.Path == "" || c.RegionB.Path == "" {
		return fmt.Errorf("both input paths are required")
	}
	if c.RegionA.Region == c.RegionB.Region {
		return fmt.Errorf("region labels must differ")
	}
	if c.FromYear != 0 && c.ToYear != 0 && c.FromYear > c.ToYear {
		return fmt.Errorf("from_year %d after to_year %d", c.FromYear, c.ToYear)
	}
	return nil
}
