package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ternarybob/banner"

	"github.com/komsit37/stockdash/pkg/stockdash/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(v *viper.Viper, load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			printBanner(a)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := a.universe.Start(a.cfg.Universe.Refresh); err != nil {
				return err
			}
			defer a.universe.Stop()

			srv := server.New(a.controller, a.logger, server.Options{
				Addr:         a.cfg.Server.Addr,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			})

			errc := make(chan error, 1)
			go func() { errc <- srv.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8501)")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func printBanner(a *app) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorCyan).
		SetWidth(60)
	b.PrintTopLine()
	b.PrintCenteredText("STOCKDASH")
	b.PrintCenteredText("Stock Analysis Dashboard")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", version, 10)
	b.PrintKeyValue("Address", a.cfg.Server.Addr, 10)
	b.PrintKeyValue("Log level", a.cfg.Log.Level, 10)
	b.PrintBottomLine()
}
