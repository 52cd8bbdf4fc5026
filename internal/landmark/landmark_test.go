package landmark

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

const epsilon = 1e-9

func TestSet_At(t *testing.T) {
	t.Run("returns stored point", func(t *testing.T) {
		set := NeutralFace()
		got := set.At(NoseTip)
		if got.X != 0.5 || got.Y != 0.5 {
			t.Errorf("At(NoseTip) = %+v, want {0.5 0.5}", got)
		}
	})

	t.Run("out of range returns zero point", func(t *testing.T) {
		set := NeutralFace()
		for _, i := range []int{-1, NumLandmarks, NumLandmarks + 10} {
			if got := set.At(i); got != (Point{}) {
				t.Errorf("At(%d) = %+v, want zero point", i, got)
			}
		}
	})

	t.Run("nil set returns zero point", func(t *testing.T) {
		var set *Set
		if got := set.At(NoseTip); got != (Point{}) {
			t.Errorf("At on nil set = %+v, want zero point", got)
		}
	})
}

func TestSet_ToScreen(t *testing.T) {
	set := NeutralFace().WithNose(0.25, 0.75)

	x, y := set.ToScreen(NoseTip, 1920, 1080)
	if math.Abs(x-480) > epsilon {
		t.Errorf("x = %f, want 480", x)
	}
	if math.Abs(y-810) > epsilon {
		t.Errorf("y = %f, want 810", y)
	}

	if got := set.ScaledY(NoseTip, 1080); math.Abs(got-810) > epsilon {
		t.Errorf("ScaledY = %f, want 810", got)
	}
}

func TestSet_Modifiers(t *testing.T) {
	base := NeutralFace()

	t.Run("lip gap", func(t *testing.T) {
		open := base.WithLipGap(0.02)
		gap := open.At(LowerLip).Y - open.At(UpperLip).Y
		if math.Abs(gap-0.02) > epsilon {
			t.Errorf("lip gap = %f, want 0.02", gap)
		}
		if base.At(LowerLip).Y != base.At(UpperLip).Y {
			t.Error("WithLipGap must not modify the receiver")
		}
	})

	t.Run("eye gap", func(t *testing.T) {
		closed := base.WithEyeGap(0.001)
		gap := closed.At(LeftEyeLower).Y - closed.At(LeftEyeUpper).Y
		if math.Abs(gap-0.001) > epsilon {
			t.Errorf("eye gap = %f, want 0.001", gap)
		}
	})

	t.Run("teeth y", func(t *testing.T) {
		teeth := base.WithTeethY(0.001)
		for _, i := range TeethIndices {
			if teeth.At(i).Y != 0.001 {
				t.Errorf("landmark %d y = %f, want 0.001", i, teeth.At(i).Y)
			}
		}
	})
}

// faceLine builds a service line for one face of n points, all at
// (0.1, 0.2) except the nose tip.
func faceLine(n int, nose Point) string {
	var b strings.Builder
	b.WriteString(`{"faces":[{"points":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		p := Point{X: 0.1, Y: 0.2}
		if i == NoseTip {
			p = nose
		}
		fmt.Fprintf(&b, `{"x":%g,"y":%g}`, p.X, p.Y)
	}
	b.WriteString("]}]}\n")
	return b.String()
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantNil   bool
		wantErr   bool
		wantErrIs error
		wantNose  Point
	}{
		{
			name:     "single face",
			line:     faceLine(NumLandmarks, Point{X: 0.55, Y: 0.45}),
			wantNose: Point{X: 0.55, Y: 0.45},
		},
		{
			name:      "face without iris points",
			line:      faceLine(468, Point{X: 0.55, Y: 0.45}),
			wantNil:   true,
			wantErr:   true,
			wantErrIs: ErrIncompleteFace,
		},
		{
			name:      "too many points",
			line:      faceLine(NumLandmarks+1, Point{X: 0.55, Y: 0.45}),
			wantNil:   true,
			wantErr:   true,
			wantErrIs: ErrIncompleteFace,
		},
		{
			name:    "no faces",
			line:    `{"faces":[]}` + "\n",
			wantNil: true,
		},
		{
			name:    "face without points",
			line:    `{"faces":[{"points":[]}]}`,
			wantNil: true,
		},
		{
			name:    "service error",
			line:    `{"faces":[],"error":"camera frame could not be decoded"}`,
			wantNil: true,
			wantErr: true,
		},
		{
			name:    "malformed json",
			line:    `{"faces":[`,
			wantNil: true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := parseResponse([]byte(tt.line))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
				t.Errorf("parseResponse() error = %v, want %v", err, tt.wantErrIs)
			}
			if tt.wantNil {
				if set != nil {
					t.Errorf("expected nil set, got %+v", set.At(NoseTip))
				}
				return
			}
			if set == nil {
				t.Fatal("expected a set, got nil")
			}
			if got := set.At(NoseTip); got != tt.wantNose {
				t.Errorf("nose = %+v, want %+v", got, tt.wantNose)
			}
			if got := set.At(LeftIrisT); got != (Point{X: 0.1, Y: 0.2}) {
				t.Errorf("iris = %+v, want every point decoded", got)
			}
		})
	}
}

func TestNewFaceMeshSource_MissingScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScriptPath = filepath.Join(t.TempDir(), "does-not-exist.py")

	_, err := NewFaceMeshSource(cfg)
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestMockSource(t *testing.T) {
	t.Run("returns nil by default", func(t *testing.T) {
		mock := NewMockSource()

		set, err := mock.Detect(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if set != nil {
			t.Error("expected no face")
		}
	})

	t.Run("plays sequence then fallback", func(t *testing.T) {
		mock := NewMockSource()
		face := NeutralFace()
		mock.SetSequence([]*Set{face, nil})
		mock.SetFace(face.WithNose(0.1, 0.1))

		first, _ := mock.Detect(nil)
		second, _ := mock.Detect(nil)
		third, _ := mock.Detect(nil)

		if first != face {
			t.Error("first call should return the first sequenced set")
		}
		if second != nil {
			t.Error("second call should return no face")
		}
		if third == nil || third.At(NoseTip).X != 0.1 {
			t.Error("third call should return the fallback set")
		}
		if mock.Calls() != 3 {
			t.Errorf("Calls() = %d, want 3", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockSource()
		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		set, err := mock.Detect(nil)
		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if set != nil {
			t.Error("expected nil set when error is set")
		}
	})

	t.Run("Close marks closed", func(t *testing.T) {
		mock := NewMockSource()
		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
		if !mock.Closed() {
			t.Error("Closed() should be true after Close")
		}
	})

	t.Run("implements Source interface", func(t *testing.T) {
		var _ Source = (*MockSource)(nil)
		var _ Source = (*FaceMeshSource)(nil)
	})
}
