package vehicle

import "context"

// Repository loads and stores vehicle profiles
type Repository interface {
	FindByID(ctx context.Context, id int) (*Profile, error)
	// Save inserts or updates the profile; a zero ID is assigned on insert
	Save(ctx context.Context, profile *Profile) error
	// List returns every stored profile ordered by ID
	List(ctx context.Context) ([]*Profile, error)
}
