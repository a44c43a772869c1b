package widgets

import (
	"math"
	"time"
)

// Easing maps normalized time in [0, 1] to animation progress.
type Easing func(t float64) float64

// Linear progresses at a constant rate.
func Linear(t float64) float64 { return t }

// Spring overshoots slightly and settles on the target.
func Spring(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Exp(-6*t)*math.Cos(12*t)
}

// Tween interpolates a scalar from one value to another over a fixed duration.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Ease     Easing
}

// At returns the value after elapsed time.
func (tw Tween) At(elapsed time.Duration) float64 {
	if tw.Duration <= 0 || elapsed >= tw.Duration {
		return tw.To
	}
	if elapsed <= 0 {
		return tw.From
	}

	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}

	t := float64(elapsed) / float64(tw.Duration)
	return tw.From + (tw.To-tw.From)*ease(t)
}

// Frames samples the tween n times, ending exactly on To.
func (tw Tween) Frames(n int) []float64 {
	if n <= 0 {
		return nil
	}

	frames := make([]float64, n)
	for i := 1; i <= n; i++ {
		frames[i-1] = tw.At(tw.Duration * time.Duration(i) / time.Duration(n))
	}
	return frames
}
