package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/desertthunder/setlistsync/internal/tasks"
	"github.com/desertthunder/setlistsync/internal/ui"
)

// tuiLogPath receives log output while the terminal UI owns the screen.
const tuiLogPath = "./tmp/setlistsync-tui.log"

// runTUI hands the ranking and publish steps to the terminal UI.
func (r *Runner) runTUI(ctx context.Context, opts tasks.RankOpts, pub tasks.PublishOpts) error {
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine, err := r.newEngine(ctx, true)
	if err != nil {
		return err
	}

	p := tea.NewProgram(ui.NewModel(ctx, engine, opts, pub), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
