package allocation

import (
	"fmt"
	"math"

	"github.com/dkastrati/windlink/core/model"
	"github.com/dkastrati/windlink/core/solver"
)

// valueTol absorbs solver roundoff when reading assignments back. Values
// below -valueTol or above the cap by more than valueTol are treated as
// extraction failures rather than clamped.
const valueTol = 1e-6

// Extract reads the solved assignment into one ResultRow per timestamp, in
// domain order. It is all-or-nothing: the first unreadable value aborts the
// whole extraction.
func (m *Model) Extract() ([]model.ResultRow, error) {
	if m.res.Status != solver.StatusOptimal {
		return nil, fmt.Errorf("%w: solver status %s", ErrNoSolution, m.res.Status)
	}
	if len(m.res.ExportAB) != len(m.times) || len(m.res.ExportBA) != len(m.times) {
		return nil, fmt.Errorf("%w: assignment covers %d of %d timesteps", ErrNoSolution, len(m.res.ExportAB), len(m.times))
	}

	rows := make([]model.ResultRow, len(m.times))
	for i, t := range m.times {
		ab, err := readValue(m.res.ExportAB[i], m.prodA[i])
		if err != nil {
			return nil, ExtractionError{Time: t, Value: m.res.ExportAB[i], Reason: err.Error()}
		}
		ba, err := readValue(m.res.ExportBA[i], m.prodB[i])
		if err != nil {
			return nil, ExtractionError{Time: t, Value: m.res.ExportBA[i], Reason: err.Error()}
		}
		rows[i] = model.ResultRow{Time: t, ExportAB: ab, ExportBA: ba}
	}
	return rows, nil
}

func readValue(v, cap float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value is not finite")
	}
	if v < -valueTol {
		return 0, fmt.Errorf("value is negative")
	}
	if v > cap+valueTol {
		return 0, fmt.Errorf("value exceeds production cap %.3f", cap)
	}
	// Clamp roundoff back into bounds.
	if v < 0 {
		v = 0
	}
	if v > cap {
		v = cap
	}
	return v, nil
}
