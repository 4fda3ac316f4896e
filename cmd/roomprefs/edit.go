package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/logging"
	"github.com/cristianoliveira/roomprefs/internal/tui/panel"
	"github.com/spf13/cobra"
)

const editCommandLong = `Open the interactive settings panel for the active profile.

Changes are saved as soon as they are made. Press ? for the key help and
esc or q to leave.

USAGE:
    roomprefs edit`

// programRunner runs a bubbletea model until it quits.
type programRunner func(model tea.Model) error

// NewEditCmd creates the edit command with explicit dependencies.
func NewEditCmd(sessions sessionOpener, run programRunner) *cobra.Command {
	if sessions == nil {
		panic("NewEditCmd: sessions dependency cannot be nil")
	}
	if run == nil {
		panic("NewEditCmd: run dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "edit",
		Short: "Edit settings interactively",
		Long:  editCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return withSession(sessions, func(s *session) error {
				logger := logging.GetGlobal().With("component", "edit")
				m := panel.New(s.Store,
					panel.WithBackendName(s.BackendName),
					panel.WithOnTrayOptionChanged(func(on bool) {
						logger.Info("tray option changed", "enabled", on)
					}),
					panel.WithOnThemeChanged(func(theme string) {
						logger.Info("theme changed", "theme", theme)
					}),
					panel.WithOnDecryptSidebarChanged(func(on bool) {
						logger.Info("sidebar decryption changed", "enabled", on)
					}),
				)
				defer m.Close()

				// keep stray console output off the alternate screen
				colors.SetOutput(io.Discard, io.Discard)
				defer colors.SetOutput(nil, nil)
				if s.Hooks != nil {
					s.Hooks.SetOutput(io.Discard)
				}

				if err := run(editModel{panel: m}); err != nil {
					return fmt.Errorf("error running settings panel: %w", err)
				}
				return nil
			})
		},
	}
}

// editModel quits the program when the panel asks to move back.
type editModel struct {
	panel *panel.Model
}

func (m editModel) Init() tea.Cmd {
	return m.panel.Init()
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(panel.MoveBackMsg); ok {
		return m, tea.Quit
	}
	_, cmd := m.panel.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	return m.panel.View()
}

func runProgram(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var editCmd = NewEditCmd(defaultSessions, runProgram)

func init() {
	cmd.RootCmd.AddCommand(editCmd)
}
