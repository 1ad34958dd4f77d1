package model

import (
	"fmt"
	"sort"
	"time"
)

// Point is a single observation of an energy production series.
type Point struct {
	Time  time.Time
	Value float64 // energy produced during the period in MWh
}

// ProductionSeries holds the wind production of one region over an ordered
// timestamp domain. It is immutable once built: timestamps are sorted
// ascending and values stay aligned with them by index.
type ProductionSeries struct {
	region string
	times  []time.Time
	values []float64
}

// NewProductionSeries builds a series from raw points. Points are sorted by
// timestamp; duplicate timestamps and negative production values are
// rejected.
func NewProductionSeries(region string, points []Point) (*ProductionSeries, error) {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	s := &ProductionSeries{
		region: region,
		times:  make([]time.Time, len(sorted)),
		values: make([]float64, len(sorted)),
	}
	for i, p := range sorted {
		if p.Value < 0 {
			return nil, fmt.Errorf("region %s: negative production %.3f at %s", region, p.Value, p.Time.Format(time.RFC3339))
		}
		if i > 0 && p.Time.Equal(sorted[i-1].Time) {
			return nil, fmt.Errorf("region %s: duplicate timestamp %s", region, p.Time.Format(time.RFC3339))
		}
		s.times[i] = p.Time
		s.values[i] = p.Value
	}
	return s, nil
}

// Region returns the region label the series belongs to.
func (s *ProductionSeries) Region() string { return s.region }

// Len returns the number of observations.
func (s *ProductionSeries) Len() int { return len(s.times) }

// At returns the i-th observation in timestamp order.
func (s *ProductionSeries) At(i int) (time.Time, float64) { return s.times[i], s.values[i] }

// Max returns the largest production value, or 0 for an empty series.
func (s *ProductionSeries) Max() float64 {
	max := 0.0
	for _, v := range s.values {
		if v > max {
			max = v
		}
	}
	return max
}

// Window returns a new series restricted to years [from, to] inclusive.
// A zero bound leaves that side open.
func (s *ProductionSeries) Window(from, to int) *ProductionSeries {
	out := &ProductionSeries{region: s.region}
	for i, t := range s.times {
		y := t.Year()
		if from != 0 && y < from {
			continue
		}
		if to != 0 && y > to {
			continue
		}
		out.times = append(out.times, t)
		out.values = append(out.values, s.values[i])
	}
	return out
}
