package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	pricingQuery "github.com/parniayzdin/Fuelio/internal/application/pricing/queries"
)

// newForecastCommand creates the forecast command
func newForecastCommand(s *session) *cobra.Command {
	var (
		days       int
		todayPrice float64
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast regional fuel prices",
		Long: `Forecast the regional average price for the coming days.

The forecast fits a line through the most recent recorded prices for the
region (see 'fuelio prices record'). Each day is labeled rising, flat or
falling relative to today's price.

Examples:
  fuelio forecast --region ontario
  fuelio forecast --region ontario --days 3 --today-price 1.549`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &pricingQuery.ForecastPricesQuery{
				Region: s.resolveRegion(),
				Days:   days,
			}
			if cmd.Flags().Changed("today-price") {
				query.TodayPrice = &todayPrice
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to forecast prices: %w", err)
				}
				result := response.(*pricingQuery.ForecastPricesResponse)

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, result)
				}

				fmt.Fprintf(out, "Region: %s\n", result.Region)
				fmt.Fprintf(out, "Today:  %s\n", optionalPrice(result.TodayPrice))
				if len(result.Points) == 0 {
					fmt.Fprintln(out, "\nNo recorded prices for this region.")
					return nil
				}

				fmt.Fprintln(out)
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "DAY\tPREDICTED\tDELTA\tTREND")
				fmt.Fprintln(w, "---\t---------\t-----\t-----")
				for _, p := range result.Points {
					fmt.Fprintf(w, "+%d\t%s\t%+.3f\t%s\n", p.DayOffset, formatPrice(p.PredictedPrice), p.DeltaFromToday, p.Trend)
				}
				w.Flush()
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to forecast (default 7)")
	cmd.Flags().Float64Var(&todayPrice, "today-price", 0, "Today's price, overriding the latest recorded price")

	return cmd
}
