package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/traitmix/pkg/manifest"
	"github.com/arthur-debert/traitmix/pkg/style"
)

func newCheckCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Validate a composition plan and simulate its pipelines",
		Long: `check loads a TOML or YAML composition plan, validates it, and
simulates every pipeline against stub classes. The exit status is
non-zero when any pipeline hits a conflict, which makes check usable
as a CI gate for composition order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := style.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if format == style.FormatAuto {
				format = style.DetectFormat(os.Stdout)
			}

			plan, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			report, err := plan.Simulate()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), style.RenderReport(report, format))

			if report.HasConflicts() {
				return fmt.Errorf("%d pipeline(s) failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "auto", "Output format: auto, term, or text")

	return cmd
}
