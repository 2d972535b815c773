package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fjod/go_meals/internal/domain"
)

// FileStore keeps all accepted orders in a single JSON file. Each append
// reads the full collection, adds the order and rewrites the file. The
// mutex serializes writers; without it concurrent submissions would lose
// updates (read-modify-write over a shared file).
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readAll()
	if err != nil {
		return err
	}

	for _, existing := range orders {
		if existing.ID == order.ID {
			return ErrDuplicateID
		}
	}

	orders = append(orders, order)

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}

	if writeErr := os.WriteFile(s.path, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write orders file: %w", writeErr)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *FileStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *FileStore) Close() error {
	return nil
}

// readAll treats a missing file as an empty collection so the first accepted
// order creates it.
func (s *FileStore) readAll() ([]*domain.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*domain.Order{}, nil
		}
		return nil, fmt.Errorf("failed to read orders file: %w", err)
	}

	var orders []*domain.Order
	if unmarshalErr := json.Unmarshal(data, &orders); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to decode orders file: %w", unmarshalErr)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}
