package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nconklindev/tabconv/internal/converter"
	"github.com/nconklindev/tabconv/internal/ui"
)

func (c *cli) newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Pick a file and convert it interactively",
		Args:  cobra.NoArgs,
		RunE:  c.runUI,
	}
}

func (c *cli) runUI(cmd *cobra.Command, args []string) error {
	// Log lines would corrupt the terminal, so they go to the log file or nowhere.
	log, err := c.newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer c.close()

	conv, err := c.newConverter(false, nil, log)
	if err != nil {
		return err
	}

	target, err := converter.ParseExtension(c.conf.Conversion.DefaultTarget)
	if err != nil {
		return err
	}

	dir, err := os.Getwd()
	if err != nil {
		return errors.WithStack(err)
	}

	model := ui.NewModel(conv, ui.Config{Dir: dir, DefaultTarget: target})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "interactive session failed")
	}

	return nil
}
