package landmark

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrServiceNotFound is returned when the face mesh service script cannot be located.
var ErrServiceNotFound = errors.New("face mesh service script not found")

// ErrIncompleteFace is returned when the service reports a face without the full refined mesh.
var ErrIncompleteFace = errors.New("incomplete face mesh")

// Source defines the interface for face landmark detection implementations.
type Source interface {
	// Detect analyzes a video frame and returns the landmarks of the first face.
	// Returns nil when no face is detected.
	Detect(frame *gocv.Mat) (*Set, error)

	// Close releases any resources held by the source.
	Close() error
}

// Config holds configuration options for face landmark detection.
type Config struct {
	// ScriptPath overrides the service script lookup when set.
	ScriptPath string

	// RefineLandmarks enables the iris points (indices 468-477).
	RefineLandmarks bool

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		RefineLandmarks: true,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
