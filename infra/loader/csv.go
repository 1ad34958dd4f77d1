// Package loader reads regional production series from CSV files. The core
// receives in-memory series only; file layout and calendar filtering stay
// here.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dkastrati/windlink/config"
	"github.com/dkastrati/windlink/core/model"
)

// timeLayouts are tried in order when parsing the timestamp column.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadSeries reads one region's production series as described by the config
// entry. The year window [fromYear, toYear] is applied before the series is
// returned; zero bounds leave the window open.
func LoadSeries(sf config.SeriesFile, fromYear, toYear int) (*model.ProductionSeries, error) {
	f, err := os.Open(sf.Path)
	if err != nil {
		return nil, fmt.Errorf("open series %s: %w", sf.Region, err)
	}
	defer f.Close()

	s, err := readSeries(f, sf)
	if err != nil {
		return nil, fmt.Errorf("read series %s: %w", sf.Region, err)
	}
	return s.Window(fromYear, toYear), nil
}

func readSeries(r io.Reader, sf config.SeriesFile) (*model.ProductionSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	timeIdx, valueIdx := -1, -1
	for i, col := range header {
		switch col {
		case sf.TimeColumn:
			timeIdx = i
		case sf.ValueColumn:
			valueIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("time column %q not found", sf.TimeColumn)
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("value column %q not found", sf.ValueColumn)
	}

	var points []model.Point
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ts, err := parseTime(rec[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := strconv.ParseFloat(rec[valueIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse value %q: %w", line, rec[valueIdx], err)
		}
		points = append(points, model.Point{Time: ts, Value: v})
	}
	return model.NewProductionSeries(sf.Region, points)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
