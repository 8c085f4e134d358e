package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// etaSmoothing weights the newest rate sample in the moving average.
	etaSmoothing = 0.3
	// maxETA caps estimates derived from very slow early rates.
	maxETA = 24 * time.Hour
)

// ETAEstimator turns successive average-progress readings into a smoothed
// remaining-time estimate. It is not safe for concurrent use; the
// orchestrator's supervisor owns it.
type ETAEstimator struct {
	rate         float64 // progress per second, smoothed
	lastProgress float64
	lastElapsed  time.Duration
}

// Observe records progress (0..1) reached after elapsed and returns the
// updated estimate.
func (e *ETAEstimator) Observe(progress float64, elapsed time.Duration) time.Duration {
	progress = clamp01(progress)
	dt := (elapsed - e.lastElapsed).Seconds()
	if dt > 0 && progress >= e.lastProgress {
		sample := (progress - e.lastProgress) / dt
		if e.rate == 0 {
			e.rate = sample
		} else {
			e.rate = etaSmoothing*sample + (1-etaSmoothing)*e.rate
		}
		e.lastProgress, e.lastElapsed = progress, elapsed
	}
	return e.ETA()
}

// ETA returns the current estimate, 0 when unknown.
func (e *ETAEstimator) ETA() time.Duration {
	if e.rate <= 0 || e.lastProgress >= 1 {
		return 0
	}
	nanos := (1 - e.lastProgress) / e.rate * float64(time.Second)
	if nanos >= float64(maxETA) {
		return maxETA
	}
	return time.Duration(nanos)
}

// ProgressBar renders progress (clamped to 0..1) as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	count := int(clamp01(progress) * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar] 42.00% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
