package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
  {"id": "m1", "name": "Mac & Cheese", "price": 8.99, "description": "Creamy.", "image": "images/mac.jpg"},
  {"id": "m2", "name": "Margherita Pizza", "price": 12.99, "description": "Classic.", "image": "images/pizza.jpg"}
]`

func TestFileRepository_ListMeals_SourceOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available-meals.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

	repo := NewFileRepository(path)
	meals, err := repo.ListMeals(context.Background())

	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "m1", meals[0].ID)
	assert.Equal(t, "m2", meals[1].ID)
	assert.Equal(t, 8.99, meals[0].Price)
	assert.Equal(t, "images/pizza.jpg", meals[1].Image)
}

func TestFileRepository_ListMeals_PicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available-meals.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	repo := NewFileRepository(path)

	meals, err := repo.ListMeals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, meals)

	// no cache layer: the next query sees the rewritten file
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))
	meals, err = repo.ListMeals(context.Background())
	require.NoError(t, err)
	assert.Len(t, meals, 2)
}

func TestFileRepository_ListMeals_MissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nope.json"))

	_, err := repo.ListMeals(context.Background())
	assert.Error(t, err)
}

func TestFileRepository_ListMeals_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "available-meals.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	repo := NewFileRepository(path)
	_, err := repo.ListMeals(context.Background())
	assert.Error(t, err)
}
