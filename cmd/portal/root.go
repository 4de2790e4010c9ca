package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/duckcorp/portal/internal/pkg/config"
	"github.com/duckcorp/portal/pkg/logger"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Duck Corp portal backend",
	Long: `portal serves the Duck Corp intranet API: sessions, the user
directory, tags, announcements, chat, the client blacklist and the search relay.

Configuration is read from the environment (HOST, PORT, STORE_DRIVER, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return err
		}
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.Env == "development",
			Service: "portal",
		})
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
