package order

import (
	"context"

	"github.com/fjod/go_meals/internal/domain"
)

// Store defines the interface for order persistence.
// Orders are append-only: no update or delete exists.
type Store interface {
	Append(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Close() error
}
