package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duckcorp/portal/internal/core/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write default data for collections that do not exist yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, closeStore, err := openCollectionStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore(ctx) }()

		written, err := service.NewServices(store, cfg.BcryptCost, log).Seed(ctx)
		if err != nil {
			return err
		}

		if len(written) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to seed")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded: %s\n", strings.Join(written, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
