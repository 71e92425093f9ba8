package engine

// fpsWeight is the weight of the previous estimate in the moving average.
const fpsWeight = 0.9

// FPSMeter keeps an exponentially smoothed frames-per-second estimate.
type FPSMeter struct {
	value float64
}

// Update folds one frame of delta seconds into the estimate and returns it.
// Non-positive deltas carry no rate information and are skipped.
func (m *FPSMeter) Update(delta float64) float64 {
	if delta <= 0 {
		return m.value
	}
	m.value = m.value*fpsWeight + (1/delta)*(1-fpsWeight)
	return m.value
}

// Value returns the current estimate.
func (m *FPSMeter) Value() float64 {
	return m.value
}
