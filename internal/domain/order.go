package domain

import "time"

// CartItem is one distinct meal and its quantity within a cart.
// Invariant: quantity is always >= 1; a decrement to zero removes the line.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal-code"`
}

// Order is an accepted submission. Immutable once stored; there is no
// update or delete operation.
type Order struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Customer  Customer   `json:"customer"`
	CreatedAt time.Time  `json:"created_at"`
}
