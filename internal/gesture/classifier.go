// Package gesture classifies mouth and eye gestures from face landmarks and
// turns continuous gesture states into discrete edges.
package gesture

import (
	"github.com/ayusman/facepilot/internal/landmark"
)

// Kind names a gesture for logging and status display.
type Kind string

const (
	KindMouthOpen Kind = "mouth-open"
	KindTeeth     Kind = "teeth"
	KindTongue    Kind = "tongue"
	KindEyeClosed Kind = "eye-closed"
)

// Thresholds are the fixed heuristics used by the classifiers.
// Pixel values are measured on the screen height, not the camera frame.
type Thresholds struct {
	MouthOpenPx    float64 // lip gap above this is an open mouth
	TeethVisiblePx float64 // mean teeth-region y below this counts as teeth visible
	TongueMinPx    float64 // lip gap must be strictly between min and max
	TongueMaxPx    float64
	TongueSpread   float64 // sum of squared deviations of inner-mouth y, normalized units
	EyeClosedGap   float64 // eyelid gap below this, normalized units
}

// DefaultThresholds returns the stock heuristics.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MouthOpenPx:    10,
		TeethVisiblePx: 5,
		TongueMinPx:    15,
		TongueMaxPx:    30,
		TongueSpread:   0.00005,
		EyeClosedGap:   0.004,
	}
}

// State is the outcome of every classifier for one frame.
type State struct {
	MouthOpen     bool
	TeethVisible  bool
	TongueVisible bool
	EyeClosed     bool
}

// Classifier evaluates landmark sets against Thresholds for a given screen height.
type Classifier struct {
	thresholds   Thresholds
	screenHeight float64
}

// NewClassifier creates a Classifier for a screen screenHeight pixels tall.
func NewClassifier(thresholds Thresholds, screenHeight int) *Classifier {
	return &Classifier{
		thresholds:   thresholds,
		screenHeight: float64(screenHeight),
	}
}

// Thresholds returns the heuristics in use.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Evaluate runs every classifier on set. A nil set yields the zero State.
func (c *Classifier) Evaluate(set *landmark.Set) State {
	if set == nil {
		return State{}
	}
	return State{
		MouthOpen:     c.MouthOpen(set),
		TeethVisible:  c.TeethVisible(set),
		TongueVisible: c.TongueVisible(set),
		EyeClosed:     c.EyeClosed(set),
	}
}

// MouthOpen reports whether the lower lip is far enough below the upper lip.
func (c *Classifier) MouthOpen(set *landmark.Set) bool {
	return LipDistance(set, c.screenHeight) > c.thresholds.MouthOpenPx
}

// TeethVisible reports whether the mean scaled y of the teeth region is
// below the threshold. This is a coarse landmark proxy, not image analysis.
func (c *Classifier) TeethVisible(set *landmark.Set) bool {
	return MeanScaledY(set, landmark.TeethIndices, c.screenHeight) < c.thresholds.TeethVisiblePx
}

// TongueVisible reports a moderately open mouth whose inner landmarks are
// spread out vertically.
func (c *Classifier) TongueVisible(set *landmark.Set) bool {
	gap := LipDistance(set, c.screenHeight)
	if gap <= c.thresholds.TongueMinPx || gap >= c.thresholds.TongueMaxPx {
		return false
	}
	return Spread(set, landmark.InnerMouthIndices) > c.thresholds.TongueSpread
}

// EyeClosed reports whether the left eyelids are nearly touching.
func (c *Classifier) EyeClosed(set *landmark.Set) bool {
	gap := set.At(landmark.LeftEyeLower).Y - set.At(landmark.LeftEyeUpper).Y
	return gap < c.thresholds.EyeClosedGap
}

// LipDistance is the lower lip y minus the upper lip y, scaled to height.
func LipDistance(set *landmark.Set, height float64) float64 {
	return set.ScaledY(landmark.LowerLip, height) - set.ScaledY(landmark.UpperLip, height)
}

// MeanScaledY averages the scaled y of the given landmarks.
func MeanScaledY(set *landmark.Set, indices []int, height float64) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, i := range indices {
		sum += set.ScaledY(i, height)
	}
	return sum / float64(len(indices))
}

// Spread is the sum of squared deviations of the normalized y of the given
// landmarks from their mean. It is intentionally not divided by the count.
func Spread(set *landmark.Set, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	var mean float64
	for _, i := range indices {
		mean += set.At(i).Y
	}
	mean /= float64(len(indices))

	var total float64
	for _, i := range indices {
		d := set.At(i).Y - mean
		total += d * d
	}
	return total
}
