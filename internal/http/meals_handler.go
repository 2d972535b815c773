package http

import (
	"log"
	"net/http"

	"github.com/fjod/go_meals/internal/catalog"
	"github.com/fjod/go_meals/internal/domain"
)

type MealsHandler struct {
	repo catalog.Repository
}

func NewMealsHandler(repo catalog.Repository) *MealsHandler {
	return &MealsHandler{repo: repo}
}

// ListMeals returns the full catalog, unfiltered and in source order.
func (h *MealsHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := h.repo.ListMeals(r.Context())
	if err != nil {
		log.Printf("request %s: failed to list meals: %v", getRequestID(r.Context()), err)
		respondMessage(w, http.StatusInternalServerError, "Failed to load meals.")
		return
	}

	if meals == nil {
		meals = []domain.Meal{}
	}
	respondJSON(w, http.StatusOK, meals)
}
