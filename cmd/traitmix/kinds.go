package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/traitmix/pkg/trait"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the built-in trait kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{
				{"KIND", "POLICY", "COMPOSITION"},
			}
			for _, name := range trait.Kinds() {
				spec, err := trait.LookupKind(trait.Kind(name))
				if err != nil {
					return err
				}
				data = append(data, []string{name, spec.Policy.Name(), spec.Summary})
			}

			return pterm.DefaultTable.
				WithHasHeader().
				WithData(data).
				WithWriter(cmd.OutOrStdout()).
				Render()
		},
	}
}
