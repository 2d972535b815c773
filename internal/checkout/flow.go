package checkout

import (
	"context"
	"log"

	"github.com/fjod/go_meals/internal/cart"
	"github.com/fjod/go_meals/internal/domain"
)

// Submitter performs the order submission. Reset discards any retained
// submission result so a new order starts from a clean slate.
type Submitter interface {
	SubmitOrder(ctx context.Context, items []domain.CartItem, customer domain.Customer) error
	Reset()
}

// Flow drives the browsing -> cart -> checkout -> submit lifecycle. The cart
// and submitter are passed in explicitly; the flow owns only its status and
// the last failure message. All methods are meant for sequential, user-driven
// events, mirroring a single-threaded UI.
type Flow struct {
	status    Status
	cart      *cart.Cart
	submitter Submitter
	customer  domain.Customer
	lastErr   string
}

func NewFlow(c *cart.Cart, submitter Submitter) *Flow {
	return &Flow{
		status:    StatusBrowsing,
		cart:      c,
		submitter: submitter,
	}
}

func (f *Flow) Status() Status {
	return f.status
}

// FailureMessage is the retained message from the last failed submission.
func (f *Flow) FailureMessage() string {
	return f.lastErr
}

func (f *Flow) ShowCart() error {
	return f.transition(StatusCartOpen)
}

func (f *Flow) CloseCart() error {
	if f.status != StatusCartOpen {
		return IllegalTransitionError
	}
	return f.transition(StatusBrowsing)
}

// BeginCheckout opens the checkout form; only reachable from an open,
// non-empty cart.
func (f *Flow) BeginCheckout() error {
	if f.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if f.status != StatusCartOpen {
		return IllegalTransitionError
	}
	return f.transition(StatusCheckoutForm)
}

// Submit sends the current cart plus the customer details collected from the
// form. On failure the message is retained and the flow moves to
// SubmitFailed, from where Retry or a close are both valid.
func (f *Flow) Submit(ctx context.Context, customer domain.Customer) error {
	if f.status != StatusCheckoutForm && f.status != StatusSubmitFailed {
		return IllegalTransitionError
	}
	f.customer = customer
	return f.submit(ctx)
}

// Retry re-enters Submitting with the previously captured customer details.
func (f *Flow) Retry(ctx context.Context) error {
	if f.status != StatusSubmitFailed {
		return IllegalTransitionError
	}
	return f.submit(ctx)
}

func (f *Flow) submit(ctx context.Context) error {
	if err := f.transition(StatusSubmitting); err != nil {
		return err
	}

	if err := f.submitter.SubmitOrder(ctx, f.cart.Items(), f.customer); err != nil {
		f.lastErr = err.Error()
		log.Printf("order submission failed: %v", err)
		return f.transition(StatusSubmitFailed)
	}

	f.lastErr = ""
	return f.transition(StatusConfirmed)
}

// Dismiss handles the outside-click / escape-equivalent close of whatever
// modal is open. Suppressed while a submission is outstanding.
func (f *Flow) Dismiss() error {
	if f.status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	if !f.status.IsModal() {
		return IllegalTransitionError
	}
	return f.transition(StatusBrowsing)
}

// Finish acknowledges a confirmed order: the cart is emptied and the
// submission result reset so a new order can be started cleanly.
func (f *Flow) Finish() error {
	if f.status != StatusConfirmed {
		return IllegalTransitionError
	}
	if err := f.transition(StatusBrowsing); err != nil {
		return err
	}
	f.cart.Clear()
	f.submitter.Reset()
	f.lastErr = ""
	return nil
}

func (f *Flow) transition(to Status) error {
	if !CanTransitionTo(f.status, to) {
		return IllegalTransitionError
	}
	f.status = to
	return nil
}
