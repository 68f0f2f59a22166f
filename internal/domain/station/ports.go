package station

import (
	"context"

	"github.com/parniayzdin/Fuelio/internal/domain/shared"
)

// Repository defines persistence operations for gas stations
type Repository interface {
	FindByID(ctx context.Context, id string) (*GasStation, error)
	FindWithin(ctx context.Context, box shared.BoundingBox) ([]*GasStation, error)
	FindNear(ctx context.Context, center shared.GeoPoint) ([]*GasStation, error)
	Save(ctx context.Context, s *GasStation) error
}

// CardRepository defines persistence operations for the driver's payment cards
type CardRepository interface {
	FindAll(ctx context.Context) ([]CardBenefit, error)
	Save(ctx context.Context, card CardBenefit) error
}
