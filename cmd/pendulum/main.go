package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"pendulum/internal/config"
	"pendulum/internal/engine"
	"pendulum/internal/logging"
	"pendulum/internal/notify"
	"pendulum/internal/ui/session"
	"pendulum/internal/ui/settings"
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "pendulum needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to set up logging:", err)
	}
	defer closer.Close()

	if err := runApp(cfg, logger); err != nil {
		log.Fatal(err)
	}
}

func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	opts := logging.Options{}
	if cfg.DebugLog {
		path, err := logging.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		opts.Level = "debug"
		opts.Path = path
	}
	return logging.New(opts)
}

func runApp(cfg config.Config, logger *slog.Logger) error {
	// Check if this is first time setup
	if config.IsFirstRun() {
		fmt.Println("*** Welcome to Pendulum! ***")
		fmt.Println("Let's set up your preferences...")

		p := tea.NewProgram(settings.New(cfg), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}

		fresh, err := config.Load()
		if err != nil {
			return err
		}
		cfg = fresh

		fmt.Println("[OK] Setup complete! Let's start focusing!")
	}

	// One engine for the whole run; laps and stats live as long as the process
	eng := engine.New(cfg.Settings(), engine.Options{
		Notifier:  notify.New(cfg.Sound),
		DailyGoal: cfg.DailyGoal,
	})

	logger.Info("pendulum started",
		"work_minutes", cfg.WorkMinutes,
		"break_minutes", cfg.BreakMinutes,
		"long_break_minutes", cfg.LongBreakMinutes,
		"sessions_until_long_break", cfg.SessionsUntilLongBreak,
		"daily_goal", cfg.DailyGoal)

	// Main app loop
	for {
		sessionModel := session.New(eng, cfg, logger)

		p := tea.NewProgram(sessionModel, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		sessionModel = finalModel.(session.Model)
		if sessionModel.ShouldQuit() {
			fmt.Println(">>> See you next session!")
			return nil
		}

		if sessionModel.ShouldOpenSettings() {
			// Pick up anything the session persisted, like the sound toggle
			if fresh, err := config.Load(); err == nil {
				cfg = fresh
			}

			p := tea.NewProgram(settings.New(cfg), tea.WithAltScreen())
			finalSettings, err := p.Run()
			if err != nil {
				return err
			}

			if finalSettings.(settings.Model).Saved() {
				fresh, err := config.Load()
				if err != nil {
					return err
				}
				cfg = fresh

				eng.UpdateSettings(cfg.Settings())
				eng.SetDailyGoal(cfg.DailyGoal)
				eng.SetNotifier(notify.New(cfg.Sound))

				logger.Info("settings updated",
					"work_minutes", cfg.WorkMinutes,
					"break_minutes", cfg.BreakMinutes,
					"long_break_minutes", cfg.LongBreakMinutes,
					"sessions_until_long_break", cfg.SessionsUntilLongBreak,
					"daily_goal", cfg.DailyGoal)
			}
		}
	}
}
