package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pricingCmd "github.com/parniayzdin/Fuelio/internal/application/pricing/commands"
)

// newPricesCommand creates the prices command with subcommands
func newPricesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Manage regional price history",
		Long: `Manage the regional daily average prices used for forecasting.

Examples:
  fuelio prices record --region ontario --price 1.529
  fuelio prices record --region ontario --price 1.512 --day 2026-10-14`,
	}

	cmd.AddCommand(newPricesRecordCommand(s))

	return cmd
}

func newPricesRecordCommand(s *session) *cobra.Command {
	var (
		price float64
		day   string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the average price for a day",
		Long: `Record the regional average price for a day. Recording the same
region and day again replaces the earlier value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &pricingCmd.RecordRegionalPriceCommand{
				Region: s.resolveRegion(),
				Price:  price,
			}
			if day != "" {
				parsed, err := time.Parse(time.DateOnly, day)
				if err != nil {
					return fmt.Errorf("invalid --day %q: expected YYYY-MM-DD", day)
				}
				command.Day = &parsed
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				if command.Region == "" && rt.Config != nil {
					command.Region = rt.Config.Strategy.Region
				}
				response, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to record price: %w", err)
				}
				recorded := response.(*pricingCmd.RecordRegionalPriceResponse).Price

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, recorded)
				}
				fmt.Fprintf(out, "Recorded %s for %s on %s\n",
					formatPrice(recorded.Price), recorded.Region, recorded.Day.Format(time.DateOnly))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Average price per liter")
	cmd.Flags().StringVar(&day, "day", "", "Calendar day as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
