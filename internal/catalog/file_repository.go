package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fjod/go_meals/internal/domain"
	"golang.org/x/sync/singleflight"
)

// FileRepository serves meals from a JSON catalog file. The file is re-read
// on every query; there is no cache layer. Concurrent identical reads are
// coalesced so a burst of requests triggers a single file read.
type FileRepository struct {
	path string
	sfg  singleflight.Group
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) ListMeals(ctx context.Context) ([]domain.Meal, error) {
	v, err, _ := r.sfg.Do("meals", func() (interface{}, error) {
		data, readErr := os.ReadFile(r.path)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", readErr)
		}

		var meals []domain.Meal
		if decodeErr := json.Unmarshal(data, &meals); decodeErr != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", decodeErr)
		}
		return meals, nil
	})
	if err != nil {
		return nil, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return v.([]domain.Meal), nil
}
