package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/facepilot/internal/landmark"
)

const screenHeight = 1080

func TestClassifier_MouthOpen(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), screenHeight)

	tests := []struct {
		name  string
		gapPx float64
		want  bool
	}{
		{"closed", 0, false},
		{"slightly parted", 5, false},
		{"just below threshold", 9, false},
		{"open", 20, true},
		{"wide open", 80, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := landmark.NeutralFace().WithLipGap(tt.gapPx / screenHeight)
			if got := c.MouthOpen(set); got != tt.want {
				t.Errorf("MouthOpen(gap=%.0fpx) = %v, want %v", tt.gapPx, got, tt.want)
			}
		})
	}
}

func TestClassifier_TeethVisible(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), screenHeight)

	tests := []struct {
		name   string
		meanPx float64
		want   bool
	}{
		{"mean 3px", 3, true},
		{"mean 8px", 8, false},
		{"neutral face", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := landmark.NeutralFace()
			if tt.meanPx >= 0 {
				set = set.WithTeethY(tt.meanPx / screenHeight)
			}
			if got := c.TeethVisible(set); got != tt.want {
				t.Errorf("TeethVisible = %v, want %v (mean %.2fpx)", got, tt.want,
					MeanScaledY(set, landmark.TeethIndices, screenHeight))
			}
		})
	}
}

func TestClassifier_TongueVisible(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), screenHeight)

	tests := []struct {
		name  string
		gapPx float64
		want  bool
	}{
		{"closed mouth", 0, false},
		{"gap below range", 14, false},
		{"gap inside range", 20, true},
		{"gap above range", 31, false},
		{"wide open", 45, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := landmark.NeutralFace().WithLipGap(tt.gapPx / screenHeight)
			if got := c.TongueVisible(set); got != tt.want {
				t.Errorf("TongueVisible(gap=%.0fpx) = %v, want %v", tt.gapPx, got, tt.want)
			}
		})
	}

	t.Run("flat inner mouth is not a tongue", func(t *testing.T) {
		// On a 4320px screen a 20px gap is small enough in normalized units
		// for the spread check to matter.
		const tall = 4320
		c := NewClassifier(DefaultThresholds(), tall)
		set := landmark.NeutralFace().WithLipGap(20.0 / tall)
		// Collapse the other inner mouth points onto the lip midpoint.
		mid := (set.At(landmark.UpperLip).Y + set.At(landmark.LowerLip).Y) / 2
		for _, i := range []int{landmark.InnerMouthL, landmark.InnerMouthU, landmark.InnerMouthB} {
			set.Points[i].Y = mid
		}
		if Spread(set, landmark.InnerMouthIndices) > DefaultThresholds().TongueSpread {
			t.Fatalf("test setup: spread %g should be below threshold", Spread(set, landmark.InnerMouthIndices))
		}
		if c.TongueVisible(set) {
			t.Error("TongueVisible should be false when inner landmarks are flat")
		}
	})
}

func TestClassifier_EyeClosed(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), screenHeight)

	tests := []struct {
		name string
		gap  float64
		want bool
	}{
		{"open", 0.02, false},
		{"just above threshold", 0.005, false},
		{"nearly closed", 0.003, true},
		{"closed", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := landmark.NeutralFace().WithEyeGap(tt.gap)
			if got := c.EyeClosed(set); got != tt.want {
				t.Errorf("EyeClosed(gap=%.3f) = %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestClassifier_EvaluateNeutral(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), screenHeight)

	if got := c.Evaluate(landmark.NeutralFace()); got != (State{}) {
		t.Errorf("Evaluate(neutral) = %+v, want all false", got)
	}
	if got := c.Evaluate(nil); got != (State{}) {
		t.Errorf("Evaluate(nil) = %+v, want all false", got)
	}
}

func TestSpread(t *testing.T) {
	set := &landmark.Set{}
	ys := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	for i, idx := range landmark.InnerMouthIndices {
		set.Points[idx].Y = ys[i]
	}

	// mean 0.3, squared deviations 0.04+0.01+0+0.01+0.04
	if got := Spread(set, landmark.InnerMouthIndices); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("Spread = %g, want 0.1", got)
	}
	if got := Spread(set, nil); got != 0 {
		t.Errorf("Spread(nil indices) = %g, want 0", got)
	}
}

func TestCustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.MouthOpenPx = 50
	c := NewClassifier(th, screenHeight)

	set := landmark.NeutralFace().WithLipGap(20.0 / screenHeight)
	if c.MouthOpen(set) {
		t.Error("MouthOpen should honour a raised threshold")
	}
	if c.Thresholds().MouthOpenPx != 50 {
		t.Errorf("Thresholds().MouthOpenPx = %f, want 50", c.Thresholds().MouthOpenPx)
	}
}
