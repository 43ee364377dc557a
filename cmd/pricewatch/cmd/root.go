// Package cmd implements the CLI commands for pricewatch.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/pricewatch/internal/config"
	"github.com/donaldgifford/pricewatch/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pricewatch",
	Short: "Track JioMart prices and alert on drops",
	Long: "pricewatch polls the JioMart catalog for items users track, records " +
		"price history per delivery region and notifies users when a price " +
		"falls below their target or a better offer appears.",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(runCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(cyclesCommand())
	rootCmd.AddCommand(versionCommand())
}

// initConfig lets PRICEWATCH_CONFIG and PRICEWATCH_OUTPUT stand in for the
// flags.
func initConfig() {
	viper.SetEnvPrefix("PRICEWATCH")
	viper.AutomaticEnv()
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration file and builds the process logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}
