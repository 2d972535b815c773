package cart

import (
	"testing"

	"github.com/fjod/go_meals/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	macAndCheese = domain.Meal{ID: "m1", Name: "Mac & Cheese", Price: 8.99}
	pizza        = domain.Meal{ID: "m2", Name: "Margherita Pizza", Price: 5.00}
)

func TestAddItem_NewMeal(t *testing.T) {
	c := New()

	c.AddItem(macAndCheese)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddItem_SameMealTwice_MergesIntoOneLine(t *testing.T) {
	c := New()

	c.AddItem(macAndCheese)
	c.AddItem(macAndCheese)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItem_DecrementsQuantity(t *testing.T) {
	c := New()
	c.AddItem(macAndCheese)
	c.AddItem(macAndCheese)

	c.RemoveItem("m1")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem_AtQuantityOne_DeletesLine(t *testing.T) {
	c := New()
	c.AddItem(macAndCheese)

	c.RemoveItem("m1")

	assert.Empty(t, c.Items())
	assert.True(t, c.IsEmpty())
}

func TestRemoveItem_AbsentID_IsNoOp(t *testing.T) {
	c := New()
	c.AddItem(macAndCheese)
	before := c.Items()

	c.RemoveItem("nope")

	assert.Equal(t, before, c.Items())
}

func TestClear_AlwaysEmpties(t *testing.T) {
	c := New()
	c.AddItem(macAndCheese)
	c.AddItem(pizza)
	c.AddItem(pizza)

	c.Clear()

	assert.Empty(t, c.Items())

	c.Clear() // clearing an empty cart is fine too
	assert.Empty(t, c.Items())
}

func TestQuantityNeverObservableBelowOne(t *testing.T) {
	c := New()

	ops := []func(){
		func() { c.AddItem(macAndCheese) },
		func() { c.RemoveItem("m1") },
		func() { c.RemoveItem("m1") },
		func() { c.RemoveItem("m2") },
		func() { c.AddItem(pizza) },
		func() { c.AddItem(macAndCheese) },
		func() { c.RemoveItem("m2") },
		func() { c.RemoveItem("m2") },
	}

	for _, op := range ops {
		op()
		for _, item := range c.Items() {
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
	}
}

func TestTotal(t *testing.T) {
	c := New()
	c.AddItem(macAndCheese)
	c.AddItem(macAndCheese)
	c.AddItem(pizza)

	// [{price:8.99, qty:2}, {price:5.00, qty:1}] -> 22.98
	assert.InDelta(t, 22.98, c.Total(), 1e-9)
	assert.Equal(t, "22.98", c.DisplayTotal())
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	initial := State{Items: []domain.CartItem{
		{ID: "m1", Name: "Mac & Cheese", Price: 8.99, Quantity: 1},
	}}

	next := Apply(initial, Action{Kind: AddItem, Item: domain.CartItem{ID: "m1"}})

	assert.Equal(t, 1, initial.Items[0].Quantity)
	assert.Equal(t, 2, next.Items[0].Quantity)
}

func TestApply_UnknownKind_ReturnsStateUnchanged(t *testing.T) {
	initial := State{Items: []domain.CartItem{{ID: "m1", Quantity: 3}}}

	next := Apply(initial, Action{Kind: ActionKind(99)})

	assert.Equal(t, initial, next)
}
