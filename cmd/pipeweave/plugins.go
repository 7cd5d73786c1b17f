package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
)

func newPluginsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List the registered source, aggregator and sink types",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			printKind := func(label string, kind plugin.Kind) {
				fmt.Fprintf(out, "%s:\n", label)
				names := registry.List(kind)
				if len(names) == 0 {
					fmt.Fprintln(out, "  (none registered)")
					return
				}
				for _, name := range names {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}

			printKind("sources", plugin.KindSource)
			printKind("aggregators", plugin.KindAggregator)
			printKind("sinks", plugin.KindSink)
			return nil
		},
	}
	return cmd
}
