package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ayusman/facepilot/internal/config"
	"github.com/ayusman/facepilot/internal/input"
	"github.com/ayusman/facepilot/internal/keyboard"
	"github.com/ayusman/facepilot/internal/keyboard/view"
	"github.com/ayusman/facepilot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "osk: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		FileLogging: cfg.EnableFileLogging,
		Name:        "osk",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "osk: %v\n", err)
		os.Exit(1)
	}

	robot := input.NewRobot(log)
	tracker := keyboard.NewFocusTracker(robot, os.Getpid(), cfg.FocusPollInterval(), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tracker.Run(ctx)

	kb := keyboard.New(robot, tracker, log)
	log.Info("on-screen keyboard ready")
	view.Run(kb)
}
