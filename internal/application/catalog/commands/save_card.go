package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/parniayzdin/Fuelio/internal/application/logging"
	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/application/validation"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// SaveCardCommand stores a payment card and its fuel cashback.
// Saving an existing provider replaces it.
type SaveCardCommand struct {
	Provider           string   `json:"provider" validate:"required"`
	GasCashbackPercent float64  `json:"gas_cashback_percent" validate:"gte=0,lte=100"`
	PartnerStations    []string `json:"partner_stations"`
}

// SaveCardResponse carries the stored card
type SaveCardResponse struct {
	Card station.CardBenefit
}

// SaveCardHandler handles the SaveCard command
type SaveCardHandler struct {
	cards station.CardRepository
}

// NewSaveCardHandler creates a new SaveCardHandler
func NewSaveCardHandler(cards station.CardRepository) *SaveCardHandler {
	return &SaveCardHandler{cards: cards}
}

// Handle executes the SaveCard command
func (h *SaveCardHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveCardCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveCardCommand")
	}
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	card := station.CardBenefit{
		Provider:           strings.TrimSpace(cmd.Provider),
		GasCashbackPercent: cmd.GasCashbackPercent,
	}
	for _, partner := range cmd.PartnerStations {
		if p := strings.TrimSpace(partner); p != "" {
			card.PartnerStations = append(card.PartnerStations, p)
		}
	}

	if err := h.cards.Save(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "card saved", map[string]interface{}{
		"provider": card.Provider,
		"cashback": card.GasCashbackPercent,
		"partners": len(card.PartnerStations),
	})

	return &SaveCardResponse{Card: card}, nil
}
