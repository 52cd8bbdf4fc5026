package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/facepilot/internal/capture"
	"github.com/ayusman/facepilot/internal/config"
	"github.com/ayusman/facepilot/internal/control"
	"github.com/ayusman/facepilot/internal/gesture"
	"github.com/ayusman/facepilot/internal/hotkey"
	"github.com/ayusman/facepilot/internal/input"
	"github.com/ayusman/facepilot/internal/landmark"
	"github.com/ayusman/facepilot/internal/logger"
	"github.com/ayusman/facepilot/internal/overlay"
	"github.com/ayusman/facepilot/internal/tray"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "facepilot: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		FileLogging: cfg.EnableFileLogging,
		Name:        "facepilot",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "facepilot: %v\n", err)
		os.Exit(1)
	}
	if cfg.EnvPath != "" {
		log.WithField("path", cfg.EnvPath).Info("loaded configuration file")
	}

	ctrl := control.New(control.Config{
		Camera:     capture.NewCamera(cfg.CameraID, cfg.Mirror),
		Source:     newSource(cfg, log),
		Injector:   input.NewRobot(log),
		NewDisplay: newDisplay(cfg),
		FPS:        cfg.CameraFPS,
		Tuning:     cfg.Tuning(),
		Logger:     log,
	})

	t := tray.New()
	t.OnToggle(func(mode control.Mode) {
		if err := ctrl.Toggle(mode); err != nil {
			log.WithError(err).WithField("mode", mode.String()).Error("failed to start control")
		}
	})
	ctrl.OnStateChange(func(state control.State, mode control.Mode, reason string) {
		t.SetState(state == control.StateRunning, mode)
	})
	ctrl.OnGesture(func(mode control.Mode, kind gesture.Kind) {
		t.SetLastGesture(string(kind))
	})

	keys, err := hotkey.New(cfg.QuitHotkey, log)
	if err != nil {
		log.WithError(err).Warn("quit hotkey disabled")
	} else {
		keys.Start(ctrl.Stop)
	}

	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			if keys != nil {
				keys.Stop()
			}
			if err := ctrl.Close(); err != nil {
				log.WithError(err).Warn("error closing landmark source")
			}
		})
	}
	t.OnQuit(shutdown)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("interrupted, shutting down")
		shutdown()
		t.Quit()
	}()

	log.Info("FacePilot ready")
	t.Run()
}

// newSource prefers the face mesh service and falls back to a source that
// never sees a face, so sessions still start and stop cleanly without it.
func newSource(cfg *config.Config, log *logrus.Logger) landmark.Source {
	lc := landmark.DefaultConfig()
	lc.ScriptPath = cfg.LandmarkScript

	src, err := landmark.NewFaceMeshSource(lc)
	if err != nil {
		log.WithError(err).Warn("face mesh service not available, no face will be detected")
		return landmark.NewMockSource()
	}
	log.Info("using face mesh landmark service")
	return src
}

func newDisplay(cfg *config.Config) func(control.Mode) overlay.Display {
	if !cfg.ShowDebugWindow {
		return nil
	}
	return func(mode control.Mode) overlay.Display {
		return overlay.NewWindow(overlay.Title(mode == control.ModeEye))
	}
}
