package checkout

// Status is the user's progress through the order flow. Exactly one value
// holds at a time and drives which modal (if any) is visible.
type Status string

const (
	StatusBrowsing     Status = "BROWSING"
	StatusCartOpen     Status = "CART_OPEN"
	StatusCheckoutForm Status = "CHECKOUT_FORM"
	StatusSubmitting   Status = "SUBMITTING"
	StatusConfirmed    Status = "CONFIRMED"
	StatusSubmitFailed Status = "SUBMIT_FAILED"
)

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

func (s Status) IsModal() bool {
	return s != StatusBrowsing
}

var validTransitions = map[Status][]Status{
	StatusBrowsing:     {StatusCartOpen},
	StatusCartOpen:     {StatusBrowsing, StatusCheckoutForm},
	StatusCheckoutForm: {StatusBrowsing, StatusSubmitting},
	StatusSubmitting:   {StatusConfirmed, StatusSubmitFailed},
	StatusConfirmed:    {StatusBrowsing},
	StatusSubmitFailed: {StatusBrowsing, StatusSubmitting},
}

func CanTransitionTo(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
