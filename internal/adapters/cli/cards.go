package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	catalogCmd "github.com/parniayzdin/Fuelio/internal/application/catalog/commands"
	catalogQuery "github.com/parniayzdin/Fuelio/internal/application/catalog/queries"
)

// newCardsCommand creates the cards command with subcommands
func newCardsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage fuel cashback cards",
		Long: `Manage the payment cards whose fuel cashback is applied when planning.

A card without partner stations earns cashback everywhere. Partners match
a station brand or name, ignoring case.

Examples:
  fuelio cards list
  fuelio cards add --provider "Costco Visa" --cashback 4 --partner Costco
  fuelio cards add --provider "Everyday Rewards" --cashback 1.5`,
	}

	cmd.AddCommand(newCardsListCommand(s))
	cmd.AddCommand(newCardsAddCommand(s))

	return cmd
}

func newCardsListCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known card providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, &catalogQuery.ListCardProvidersQuery{})
				if err != nil {
					return fmt.Errorf("failed to list card providers: %w", err)
				}
				providers := response.(*catalogQuery.ListCardProvidersResponse).Providers

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, providers)
				}
				for _, p := range providers {
					fmt.Fprintln(out, p)
				}
				return nil
			})
		},
	}
}

func newCardsAddCommand(s *session) *cobra.Command {
	var (
		provider string
		cashback float64
		partners []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a card",
		Long:  `Save a card. Saving a provider again replaces its cashback and partners.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &catalogCmd.SaveCardCommand{
				Provider:           provider,
				GasCashbackPercent: cashback,
				PartnerStations:    partners,
			}

			return s.run(cmd, func(ctx context.Context, rt *Runtime) error {
				response, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to save card: %w", err)
				}
				card := response.(*catalogCmd.SaveCardResponse).Card

				out := cmd.OutOrStdout()
				if s.jsonOutput {
					return printJSON(out, card)
				}
				fmt.Fprintf(out, "Saved %s: %.2f%% cashback", card.Provider, card.GasCashbackPercent)
				if len(card.PartnerStations) > 0 {
					fmt.Fprintf(out, " at %v", card.PartnerStations)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Card provider name")
	cmd.Flags().Float64Var(&cashback, "cashback", 0, "Fuel cashback in percent")
	cmd.Flags().StringSliceVar(&partners, "partner", nil, "Partner brand or station name (repeatable)")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}
