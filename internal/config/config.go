// Package config loads runtime settings from a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/facepilot/internal/control"
	"github.com/ayusman/facepilot/internal/gesture"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// EnvPathVar names a .env file to use when none sits next to the executable.
const EnvPathVar = "FACEPILOT_ENV"

// Config is the validated runtime configuration.
type Config struct {
	EnvPath string // .env file that was loaded, empty if none

	CameraID          int    `validate:"gte=0"`
	CameraFPS         int    `validate:"gt=0,lte=120"`
	Mirror            bool
	ShowDebugWindow   bool
	LogLevel          string `validate:"oneof=trace debug info warn warning error"`
	EnableFileLogging bool
	QuitHotkey        string `validate:"required"`

	SmoothingAlpha  float64 `validate:"gt=0,lt=1"`
	HorizontalGain  float64 `validate:"gt=0"`
	VerticalGain    float64 `validate:"gt=0"`
	MaxAbsentFrames int     `validate:"gt=0"`

	MouthOpenPx    float64 `validate:"gte=0"`
	TeethVisiblePx float64 `validate:"gte=0"`
	TongueMinPx    float64 `validate:"gte=0"`
	TongueMaxPx    float64 `validate:"gtfield=TongueMinPx"`
	TongueSpread   float64 `validate:"gte=0"`
	EyeClosedGap   float64 `validate:"gt=0"`

	EyeClickCooldownMS int `validate:"gt=0"`
	FocusPollMS        int `validate:"gt=0"`

	LandmarkScript string `validate:"omitempty,file"`
}

// Load reads the .env next to the executable, or the file named by
// FACEPILOT_ENV, then the process environment.
func Load() (*Config, error) {
	return LoadFile(resolveEnvPath())
}

// LoadFile reads envPath (if not empty) and then the process environment.
// Variables already set in the environment win over the file.
func LoadFile(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	p := parser{}
	defaults := gesture.DefaultThresholds()

	cfg := &Config{
		EnvPath:           envPath,
		CameraID:          p.getInt("CAMERA_ID", 0),
		CameraFPS:         p.getInt("CAMERA_FPS", 30),
		Mirror:            p.getBool("MIRROR", true),
		ShowDebugWindow:   p.getBool("SHOW_DEBUG_WINDOW", true),
		LogLevel:          strings.ToLower(p.getString("LOG_LEVEL", "info")),
		EnableFileLogging: p.getBool("ENABLE_FILE_LOGGING", true),
		QuitHotkey:        p.getString("QUIT_HOTKEY", "Ctrl+Alt+Q"),

		SmoothingAlpha:  p.getFloat("SMOOTHING_ALPHA", 0.2),
		HorizontalGain:  p.getFloat("HORIZONTAL_GAIN", 6),
		VerticalGain:    p.getFloat("VERTICAL_GAIN", 8),
		MaxAbsentFrames: p.getInt("MAX_ABSENT_FRAMES", control.DefaultMaxAbsent),

		MouthOpenPx:    p.getFloat("MOUTH_OPEN_PX", defaults.MouthOpenPx),
		TeethVisiblePx: p.getFloat("TEETH_VISIBLE_PX", defaults.TeethVisiblePx),
		TongueMinPx:    p.getFloat("TONGUE_MIN_PX", defaults.TongueMinPx),
		TongueMaxPx:    p.getFloat("TONGUE_MAX_PX", defaults.TongueMaxPx),
		TongueSpread:   p.getFloat("TONGUE_SPREAD", defaults.TongueSpread),
		EyeClosedGap:   p.getFloat("EYE_CLOSED_GAP", defaults.EyeClosedGap),

		EyeClickCooldownMS: p.getInt("EYE_CLICK_COOLDOWN_MS", 1000),
		FocusPollMS:        p.getInt("FOCUS_POLL_MS", 100),

		LandmarkScript: p.getString("LANDMARK_SCRIPT", ""),
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Thresholds returns the gesture heuristics.
func (c *Config) Thresholds() gesture.Thresholds {
	return gesture.Thresholds{
		MouthOpenPx:    c.MouthOpenPx,
		TeethVisiblePx: c.TeethVisiblePx,
		TongueMinPx:    c.TongueMinPx,
		TongueMaxPx:    c.TongueMaxPx,
		TongueSpread:   c.TongueSpread,
		EyeClosedGap:   c.EyeClosedGap,
	}
}

// Tuning returns the control session parameters.
func (c *Config) Tuning() control.Tuning {
	return control.Tuning{
		Alpha:          c.SmoothingAlpha,
		HorizontalGain: c.HorizontalGain,
		VerticalGain:   c.VerticalGain,
		Thresholds:     c.Thresholds(),
		MaxAbsent:      c.MaxAbsentFrames,
		ClickCooldown:  time.Duration(c.EyeClickCooldownMS) * time.Millisecond,
	}
}

// FocusPollInterval is how often the keyboard samples the foreground window.
func (c *Config) FocusPollInterval() time.Duration {
	return time.Duration(c.FocusPollMS) * time.Millisecond
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

// parser reads typed environment values and keeps the first error.
type parser struct {
	err error
}

func (p *parser) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

func (p *parser) getString(key, def string) string {
	if v, ok := p.lookup(key); ok {
		return v
	}
	return def
}

func (p *parser) getInt(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) getFloat(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) getBool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}
