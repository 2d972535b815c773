package cart

import (
	"fmt"

	"github.com/fjod/go_meals/internal/domain"
)

// ActionKind enumerates the cart operations. Apply switches over it
// exhaustively; an unknown kind leaves the state untouched.
type ActionKind int

const (
	AddItem ActionKind = iota
	RemoveItem
	ClearCart
)

type Action struct {
	Kind ActionKind
	Item domain.CartItem // AddItem: the meal being added (Quantity ignored)
	ID   string          // RemoveItem: the meal id to decrement
}

type State struct {
	Items []domain.CartItem
}

// Apply is a pure transition function: it never mutates the input state and
// returns a state where every line item has quantity >= 1.
func Apply(s State, a Action) State {
	switch a.Kind {
	case AddItem:
		updated := make([]domain.CartItem, len(s.Items))
		copy(updated, s.Items)
		for i := range updated {
			if updated[i].ID == a.Item.ID {
				updated[i].Quantity++
				return State{Items: updated}
			}
		}
		line := a.Item
		line.Quantity = 1
		return State{Items: append(updated, line)}

	case RemoveItem:
		for i, item := range s.Items {
			if item.ID != a.ID {
				continue
			}
			if item.Quantity == 1 {
				updated := make([]domain.CartItem, 0, len(s.Items)-1)
				updated = append(updated, s.Items[:i]...)
				updated = append(updated, s.Items[i+1:]...)
				return State{Items: updated}
			}
			updated := make([]domain.CartItem, len(s.Items))
			copy(updated, s.Items)
			updated[i].Quantity--
			return State{Items: updated}
		}
		return s // absent id is a no-op

	case ClearCart:
		return State{Items: []domain.CartItem{}}
	}

	return s
}

// Cart is an explicit handle over the reducer state, passed to whatever
// needs it instead of living in an ambient global.
type Cart struct {
	state State
}

func New() *Cart {
	return &Cart{state: State{Items: []domain.CartItem{}}}
}

func (c *Cart) AddItem(meal domain.Meal) {
	c.state = Apply(c.state, Action{
		Kind: AddItem,
		Item: domain.CartItem{ID: meal.ID, Name: meal.Name, Price: meal.Price},
	})
}

func (c *Cart) RemoveItem(id string) {
	c.state = Apply(c.state, Action{Kind: RemoveItem, ID: id})
}

func (c *Cart) Clear() {
	c.state = Apply(c.state, Action{Kind: ClearCart})
}

func (c *Cart) Items() []domain.CartItem {
	items := make([]domain.CartItem, len(c.state.Items))
	copy(items, c.state.Items)
	return items
}

func (c *Cart) IsEmpty() bool {
	return len(c.state.Items) == 0
}

// Total is the exact sum of price*quantity across all lines, unrounded.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.state.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// DisplayTotal rounds only the presentation, never the stored total.
func (c *Cart) DisplayTotal() string {
	return fmt.Sprintf("%.2f", c.Total())
}
