package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func cyclesCommand() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "cycles",
		Short: "List recent polling cycles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListCycleRuns(ctx, limit)
			if err != nil {
				return err
			}

			return printCycleRuns(cmd.OutOrStdout(), viper.GetString("output"), runs)
		},
	}

	c.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return c
}
