package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fjod/go_meals/internal/domain"
	"github.com/fjod/go_meals/internal/order"
)

// --- Mock store ---

type storeMock struct {
	orders []*domain.Order
	err    error
}

func (m *storeMock) Append(_ context.Context, o *domain.Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *storeMock) List(context.Context) ([]*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *storeMock) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (m *storeMock) Close() error {
	return nil
}

const validOrderBody = `{
  "order": {
    "items": [
      {"id": "m1", "name": "Mac & Cheese", "price": 8.99, "quantity": 2}
    ],
    "customer": {
      "name": "Max Mustermann",
      "email": "max@example.com",
      "street": "Musterstr. 1",
      "city": "Munich",
      "postal-code": "80331"
    }
  }
}`

func newOrdersHandler(store *storeMock) *OrdersHandler {
	return NewOrdersHandler(order.NewService(store))
}

func decodeMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var resp MessageResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Message
}

// --- CreateOrder tests ---

func TestCreateOrder_Success(t *testing.T) {
	store := &storeMock{}
	handler := newOrdersHandler(store)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/orders", strings.NewReader(validOrderBody))

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("expected %d, got %d", http.StatusCreated, recorder.Code)
	}
	if msg := decodeMessage(t, recorder); msg != "Order created!" {
		t.Errorf("expected %q, got %q", "Order created!", msg)
	}
	if len(store.orders) != 1 {
		t.Fatalf("expected 1 stored order, got %d", len(store.orders))
	}
	if store.orders[0].ID == "" {
		t.Error("stored order has no id")
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	store := &storeMock{}
	handler := newOrdersHandler(store)
	recorder := httptest.NewRecorder()
	body := `{"order": {"items": [], "customer": {"name": "Max", "email": "max@example.com", "street": "s", "city": "c", "postal-code": "p"}}}`
	request := httptest.NewRequest("POST", "/orders", strings.NewReader(body))

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if msg := decodeMessage(t, recorder); msg != "Missing data." {
		t.Errorf("expected %q, got %q", "Missing data.", msg)
	}
	if len(store.orders) != 0 {
		t.Errorf("rejected order must not be stored, got %d", len(store.orders))
	}
}

func TestCreateOrder_InvalidCustomerEmail(t *testing.T) {
	handler := newOrdersHandler(&storeMock{})
	recorder := httptest.NewRecorder()
	body := `{"order": {"items": [{"id": "m1", "name": "x", "price": 1, "quantity": 1}], "customer": {"name": "Max", "email": "not-an-email", "street": "s", "city": "c", "postal-code": "p"}}}`
	request := httptest.NewRequest("POST", "/orders", strings.NewReader(body))

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	want := "Missing data: Email, name, street, postal code or city is missing."
	if msg := decodeMessage(t, recorder); msg != want {
		t.Errorf("expected %q, got %q", want, msg)
	}
}

func TestCreateOrder_MalformedJSON(t *testing.T) {
	handler := newOrdersHandler(&storeMock{})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/orders", strings.NewReader("{not json"))

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCreateOrder_StoreFailure(t *testing.T) {
	handler := newOrdersHandler(&storeMock{err: order.ErrDuplicateID})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/orders", strings.NewReader(validOrderBody))

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}

func TestCreateOrder_OversizedBody_Rejected(t *testing.T) {
	store := &storeMock{}
	router := newTestRouter(store)
	recorder := httptest.NewRecorder()

	// a valid order padded past the 1MB cap must not be accepted
	padding := strings.Repeat("x", 2<<20)
	body := `{
  "order": {
    "items": [
      {"id": "m1", "name": "Mac & Cheese", "price": 8.99, "quantity": 2}
    ],
    "customer": {
      "name": "Max Mustermann",
      "email": "max@example.com",
      "street": "` + padding + `",
      "city": "Munich",
      "postal-code": "80331"
    }
  }
}`
	request := httptest.NewRequest("POST", "/orders", strings.NewReader(body))

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected %d, got %d", http.StatusRequestEntityTooLarge, recorder.Code)
	}
	if len(store.orders) != 0 {
		t.Errorf("oversized order must not be stored, got %d", len(store.orders))
	}
}

// --- Router tests ---

func newTestRouter(store *storeMock) http.Handler {
	meals := NewMealsHandler(catalogMock{meals: []domain.Meal{{ID: "m1", Name: "Mac & Cheese", Price: 8.99}}})
	return NewRouter(meals, newOrdersHandler(store), 5*time.Second, 1<<20)
}

func TestRouter_UnmatchedRoute_404(t *testing.T) {
	router := newTestRouter(&storeMock{})
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/nope", nil))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
	if msg := decodeMessage(t, recorder); msg != "Not found" {
		t.Errorf("expected %q, got %q", "Not found", msg)
	}
}

func TestRouter_OptionsPreflight_200(t *testing.T) {
	router := newTestRouter(&storeMock{})
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, httptest.NewRequest("OPTIONS", "/orders", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if recorder.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", recorder.Body.String())
	}
}

func TestRouter_CORSHeaders(t *testing.T) {
	router := newTestRouter(&storeMock{})
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/meals", nil))

	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for key, want := range headers {
		if got := recorder.Header().Get(key); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestRouter_ListOrders(t *testing.T) {
	store := &storeMock{orders: []*domain.Order{{ID: "o1"}, {ID: "o2"}}}
	router := newTestRouter(store)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/orders", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	var orders []*domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&orders); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
}

func TestRouter_GetOrder(t *testing.T) {
	store := &storeMock{orders: []*domain.Order{{ID: "o1"}}}
	router := newTestRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/orders/o1", nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/orders/o2", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
