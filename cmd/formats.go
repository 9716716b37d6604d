package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nconklindev/tabconv/internal/converter"
)

var (
	formatsHeaderStyle = lipgloss.NewStyle().Bold(true)
	formatsPairStyle   = lipgloss.NewStyle().Width(18)
	availableStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2BB673"))
	plannedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func (c *cli) newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := converter.DefaultConversionTable(converter.CodecOptions{})
			printf(cmd.OutOrStdout(), "%s", renderFormats(table.Pairs()))
			return nil
		},
	}
}

func renderFormats(pairs []converter.PairStatus) string {
	var s strings.Builder

	s.WriteString(formatsHeaderStyle.Render(formatsPairStyle.Render("CONVERSION") + "STATUS"))
	s.WriteString("\n")

	for _, p := range pairs {
		status := availableStyle.Render("available")
		if !p.Implemented {
			status = plannedStyle.Render("not implemented")
		}
		s.WriteString(formatsPairStyle.Render(p.Pair.String()))
		s.WriteString(status)
		s.WriteString("\n")
	}

	return s.String()
}
