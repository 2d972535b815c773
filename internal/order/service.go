package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fjod/go_meals/internal/domain"
	"github.com/google/uuid"
)

// Envelope is the submission payload: {"order": {"items": [...], "customer": {...}}}.
type Envelope struct {
	Order *Payload `json:"order"`
}

type Payload struct {
	Items    []domain.CartItem `json:"items"`
	Customer *domain.Customer  `json:"customer"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit validates the payload, assigns a fresh id and appends the order.
// Validation short-circuits: items are checked before customer fields.
func (s *Service) Submit(ctx context.Context, env *Envelope) (*domain.Order, error) {
	if env == nil || env.Order == nil || len(env.Order.Items) == 0 {
		return nil, &ValidationError{Message: msgMissingItems}
	}

	c := env.Order.Customer
	if c == nil ||
		!strings.Contains(c.Email, "@") ||
		strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Street) == "" ||
		strings.TrimSpace(c.PostalCode) == "" ||
		strings.TrimSpace(c.City) == "" {
		return nil, &ValidationError{Message: msgMissingCustomer}
	}

	o := &domain.Order{
		ID:        uuid.NewString(),
		Items:     env.Order.Items,
		Customer:  *c,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Append(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	return o, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.store.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.GetByID(ctx, id)
}
