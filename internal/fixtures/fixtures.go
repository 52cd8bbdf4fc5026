// Package fixtures provides scripted landmark sequences for end-to-end tests.
package fixtures

import "github.com/ayusman/facepilot/internal/landmark"

// ScreenHeight is the screen height the pixel-based fixtures are built for.
const ScreenHeight = 1080

func px(v float64) float64 {
	return v / ScreenHeight
}

// Repeat returns n copies of set. A nil set repeats "no face".
func Repeat(set *landmark.Set, n int) []*landmark.Set {
	out := make([]*landmark.Set, n)
	for i := range out {
		out[i] = set
	}
	return out
}

// Concat joins sequences.
func Concat(parts ...[]*landmark.Set) []*landmark.Set {
	var out []*landmark.Set
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Teeth is a face showing teeth with closed lips.
func Teeth() *landmark.Set {
	return landmark.NeutralFace().WithTeethY(0.001)
}

// MouthOpen is a face with the lips 40px apart, too wide for a tongue.
func MouthOpen() *landmark.Set {
	return landmark.NeutralFace().WithLipGap(px(40))
}

// Tongue is a face with the lips 20px apart.
func Tongue() *landmark.Set {
	return landmark.NeutralFace().WithLipGap(px(20))
}

// EyeClosed is a face with the left eyelids almost touching.
func EyeClosed() *landmark.Set {
	return landmark.NeutralFace().WithEyeGap(0.001)
}

// DragThenLeave holds the left button for a few frames, releases it, looks
// around, then leaves the camera for absent frames.
func DragThenLeave(absent int) []*landmark.Set {
	return Concat(
		Repeat(landmark.NeutralFace(), 2),
		Repeat(Teeth(), 3),
		Repeat(landmark.NeutralFace().WithNose(0.55, 0.5), 2),
		Repeat(Tongue(), 2),
		Repeat(landmark.NeutralFace(), 1),
		Repeat(nil, absent),
	)
}
