package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/fjod/go_meals/internal/cart"
	"github.com/fjod/go_meals/internal/checkout"
	"github.com/fjod/go_meals/internal/domain"
	"github.com/fjod/go_meals/internal/order"
	"github.com/fjod/go_meals/internal/request"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// apiSubmitter adapts the order endpoint resource to the checkout flow.
type apiSubmitter struct {
	res *request.Resource[request.Message]
}

func (s *apiSubmitter) SubmitOrder(ctx context.Context, items []domain.CartItem, customer domain.Customer) error {
	body, err := json.Marshal(order.Envelope{
		Order: &order.Payload{Items: items, Customer: &customer},
	})
	if err != nil {
		return err
	}

	if sendErr := s.res.Send(ctx, body); sendErr != nil {
		// surface the helper's derived message, not the raw transport error
		return errors.New(s.res.Err())
	}
	return nil
}

func (s *apiSubmitter) Reset() {
	s.res.ClearData()
}

func main() {
	baseURL := getEnv("API_URL", "http://localhost:3000")
	ctx := context.Background()

	// Catalog: fetch-on-mount resource, GET issued automatically.
	meals := request.New[[]domain.Meal](baseURL+"/meals", request.Config{}, nil)
	defer meals.Close()
	<-meals.Ready()
	if msg := meals.Err(); msg != "" {
		log.Fatalf("Failed to load meals: %s", msg)
	}

	list := meals.Data()
	log.Printf("Catalog holds %d meals", len(list))
	if len(list) < 2 {
		log.Fatal("need at least two meals in the catalog for the demo")
	}

	submitRes := request.New[request.Message](baseURL+"/orders", request.Config{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{"application/json"}},
	}, request.Message{})
	defer submitRes.Close()

	c := cart.New()
	flow := checkout.NewFlow(c, &apiSubmitter{res: submitRes})

	// Browse, fill the cart, walk the checkout.
	c.AddItem(list[0])
	c.AddItem(list[0])
	c.AddItem(list[1])
	log.Printf("Cart total: $%s", c.DisplayTotal())

	if err := flow.ShowCart(); err != nil {
		log.Fatalf("show cart: %v", err)
	}
	if err := flow.BeginCheckout(); err != nil {
		log.Fatalf("begin checkout: %v", err)
	}

	customer := domain.Customer{
		Name:       "Max Mustermann",
		Email:      "max@example.com",
		Street:     "Musterstr. 1",
		City:       "Munich",
		PostalCode: "80331",
	}
	if err := flow.Submit(ctx, customer); err != nil {
		log.Fatalf("submit order: %v", err)
	}

	switch flow.Status() {
	case checkout.StatusConfirmed:
		log.Printf("Order placed: %s", submitRes.Data().Message)
		if err := flow.Finish(); err != nil {
			log.Fatalf("finish: %v", err)
		}
		log.Printf("Back to browsing, cart empty: %v", c.IsEmpty())
	case checkout.StatusSubmitFailed:
		log.Fatalf("Order rejected: %s", flow.FailureMessage())
	}
}
