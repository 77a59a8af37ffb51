package main

import (
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/render"
	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// metricsPerColumn matches the dashboard strip layout.
const metricsPerColumn = 2

func newShowCmd(load loader) *cobra.Command {
	var (
		period  string
		output  string
		metrics []string
		pretty  bool
		noColor bool
		width   int
	)
	cmd := &cobra.Command{
		Use:   "show [ticker]",
		Short: "Render one dashboard pass to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := render.New(output)
			if err != nil {
				return err
			}
			if _, ok := types.ParsePeriod(period); !ok {
				return &invalidPeriodError{period: period}
			}
			layout, err := metricsLayout(metrics)
			if err != nil {
				return err
			}

			a, err := load()
			if err != nil {
				return err
			}
			a.controller.Metrics = layout

			values := url.Values{"period": {period}}
			requested := ""
			if len(args) == 1 {
				requested = strings.ToUpper(strings.TrimSpace(args[0]))
				values.Set("ticker", requested)
			}
			d, _ := a.controller.Render(cmd.Context(), values)
			if requested != "" && d.State.Ticker != requested {
				a.logger.Warn().Str("requested", requested).Str("ticker", d.State.Ticker).Msg("Ticker not in universe, using default")
			}

			termWidth, tty := terminalSize(os.Stdout)
			if width <= 0 {
				width = termWidth
			}
			return r.Render(cmd.OutOrStdout(), d, render.Options{
				Width:      width,
				Color:      tty && !noColor,
				PrettyJSON: pretty,
			})
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", types.DefaultPeriod.Code, "analysis period: 1mo, 3mo, 6mo, 1y, 2y, 5y")
	cmd.Flags().StringVarP(&output, "format", "f", "table", "output format: table or json")
	cmd.Flags().StringSliceVarP(&metrics, "metrics", "m", nil, "metric sets or keys for the key-metrics strip (default all)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().IntVar(&width, "width", 0, "output width (default terminal width)")
	return cmd
}

// metricsLayout expands metric set names into strip columns; nil keeps the
// default layout.
func metricsLayout(names []string) ([][]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	keys, err := format.ExpandSets(names)
	if err != nil {
		return nil, err
	}
	return format.Columns(keys, metricsPerColumn), nil
}

type invalidPeriodError struct{ period string }

func (e *invalidPeriodError) Error() string {
	codes := make([]string, len(types.Periods))
	for i, p := range types.Periods {
		codes[i] = p.Code
	}
	return "invalid period " + e.period + " (want one of " + strings.Join(codes, ", ") + ")"
}
