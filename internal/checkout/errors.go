package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrSubmissionInFlight  = errors.New("submission in flight, dismissal suppressed")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
)
