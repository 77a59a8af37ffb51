package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "time/tzdata"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "stockdash",
		Short:        "Stock analysis dashboard for S&P 500 companies",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./stockdash.yaml or $HOME/.config/stockdash/stockdash.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	load := func() (*app, error) { return newApp(v, configFile) }
	rootCmd.AddCommand(
		newServeCmd(v, load),
		newShowCmd(load),
		newTickersCmd(load),
	)
	return rootCmd
}
