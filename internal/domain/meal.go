package domain

// Meal is a single catalog entry. The catalog file is the source of truth;
// meals are never mutated by this service.
type Meal struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}
