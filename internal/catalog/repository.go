package catalog

import (
	"context"

	"github.com/fjod/go_meals/internal/domain"
)

// Repository defines the interface for catalog reads.
// Consumers define this interface, not the file implementation.
type Repository interface {
	ListMeals(ctx context.Context) ([]domain.Meal, error)
}
