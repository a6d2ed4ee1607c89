package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set via ldflags during build.
var Version = "dev"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "applications-api",
		Short:        "HTTP API for applications",
		Version:      Version,
		SilenceUsage: true,
		Long: `applications-api stores applications in postgres and publishes every
created application to the applications topic of a message broker.

Configuration is read from the environment and an optional ./.env file, with
one prefix per concern: POSTGRES_, KAFKA_, BROKER_, REDIS_, APP_ and CORS_.`,
	}
	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ServerCmd(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return MigrateCmd(args[0])
		},
	}
}
