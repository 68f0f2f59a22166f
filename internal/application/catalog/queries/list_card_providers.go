package queries

import (
	"context"
	"fmt"

	"github.com/parniayzdin/Fuelio/internal/application/mediator"
	"github.com/parniayzdin/Fuelio/internal/domain/station"
)

// ListCardProvidersQuery lists the card providers a driver can pick from
type ListCardProvidersQuery struct{}

// ListCardProvidersResponse carries provider names
type ListCardProvidersResponse struct {
	Providers []string
}

// ListCardProvidersHandler handles the ListCardProviders query
type ListCardProvidersHandler struct {
	catalog *station.ProviderCatalog
}

// NewListCardProvidersHandler creates a new ListCardProvidersHandler
func NewListCardProvidersHandler(catalog *station.ProviderCatalog) *ListCardProvidersHandler {
	if catalog == nil {
		catalog = station.NewProviderCatalog(nil)
	}
	return &ListCardProvidersHandler{catalog: catalog}
}

// Handle executes the ListCardProviders query
func (h *ListCardProvidersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListCardProvidersQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCardProvidersQuery")
	}
	return &ListCardProvidersResponse{Providers: h.catalog.Providers(ctx)}, nil
}
