package station

import (
	"context"
	"sync/atomic"
)

// DefaultProviders is served whenever no provider source is configured or it fails
var DefaultProviders = []string{
	"Chase Freedom Flex",
	"Chase Freedom Unlimited",
	"Chase Sapphire Preferred",
	"Citi Custom Cash Card",
	"American Express Blue Cash Preferred",
	"Costco Anywhere Visa Card by Citi",
	"Bank of America Customized Cash Rewards",
	"Wells Fargo Autograph Card",
	"Discover it Cash Back",
	"Capital One SavorOne",
	"PNC Cash Rewards Visa",
	"Sam's Club Mastercard",
}

// ProviderSource lists card providers from an external origin
type ProviderSource interface {
	Providers(ctx context.Context) ([]string, error)
}

// ProviderCatalog caches the provider list for the lifetime of the process.
// The first successful populate wins; concurrent callers may compute
// redundantly but always observe one consistent list.
type ProviderCatalog struct {
	source ProviderSource
	cached atomic.Pointer[[]string]
}

// NewProviderCatalog creates a catalog. A nil source serves DefaultProviders.
func NewProviderCatalog(source ProviderSource) *ProviderCatalog {
	return &ProviderCatalog{source: source}
}

// Providers returns the cached list, populating it on first use
func (c *ProviderCatalog) Providers(ctx context.Context) []string {
	if list := c.cached.Load(); list != nil {
		return copyProviders(*list)
	}

	list := c.fetch(ctx)
	c.cached.CompareAndSwap(nil, &list)
	return copyProviders(*c.cached.Load())
}

func (c *ProviderCatalog) fetch(ctx context.Context) []string {
	if c.source == nil {
		return copyProviders(DefaultProviders)
	}
	list, err := c.source.Providers(ctx)
	if err != nil || len(list) == 0 {
		return copyProviders(DefaultProviders)
	}
	return copyProviders(list)
}

func copyProviders(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
