package main

import (
	"github.com/spf13/cobra"

	"github.com/komsit37/stockdash/pkg/stockdash/filter"
	"github.com/komsit37/stockdash/pkg/stockdash/render"
)

func newTickersCmd(load loader) *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "tickers",
		Short: "Print the ticker universe, comma-separated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.Parse(expr)
			if err != nil {
				return err
			}
			a, err := load()
			if err != nil {
				return err
			}
			symbols := filter.Apply(f, a.universe.Universe(cmd.Context()))
			return render.Syms(cmd.OutOrStdout(), symbols)
		},
	}
	cmd.Flags().StringVar(&expr, "filter", "", "filter expression: AAPL,MSFT | glob A* | /regex/ | substring")
	return cmd
}
