package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			box := lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("99")).
				Padding(0, 2)

			body := fmt.Sprintf("pipeweave %s\ncommit  %s\nbuilt   %s", version, commit, date)
			fmt.Fprintln(cmd.OutOrStdout(), box.Render(body))
			return nil
		},
	}
	return cmd
}
