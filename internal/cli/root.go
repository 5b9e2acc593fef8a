// Package cli provides the command-line interface for the documentation
// generator.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	configPath string
	verbose    bool
}

// Execute creates and runs the root command. It stops on SIGINT.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Running the root command without
// a subcommand generates documentation.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "docgen",
		Short:         "Generate HTML reference pages from documentation comments",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default ./.docgen.yml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	addGenerateFlags(rootCmd.Flags())

	rootCmd.AddCommand(newGenerateCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func addGenerateFlags(fs *pflag.FlagSet) {
	fs.StringP("dir", "d", "./js", "Directory containing the source units")
	fs.StringP("out", "o", "./out", "Directory the pages are written to")
	fs.String("ext", ".js", "File extension of source units")
	fs.String("links", "", "Path to a YAML file with extra type links")
	fs.Int("workers", 4, "Number of units processed in parallel")
	fs.String("title", "", "Prefix for page titles")
	fs.Bool("watch", false, "Regenerate pages when sources change")
	fs.String("style", "github", "Highlight style for examples")
	fs.Bool("no-highlight", false, "Disable example highlighting")
	fs.String("log-format", "text", "Log format: text or json")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("docgen " + Version)
		},
	}
}
