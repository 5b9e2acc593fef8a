package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/docgen/internal/validator"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check generated pages for broken anchors and links",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				dir = cfg.Output
			}

			out := cmd.OutOrStdout()
			problems, err := validator.ValidateDir(dir, out)
			if err != nil {
				return err
			}
			for _, p := range problems {
				fmt.Fprintln(out, "  "+p.String())
			}
			if len(problems) > 0 {
				return fmt.Errorf("found %d broken references", len(problems))
			}
			fmt.Fprintln(out, "\n✅ All pages are valid")
			return nil
		},
	}
}
