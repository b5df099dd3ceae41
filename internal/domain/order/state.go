package order

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrOrderAlreadyFinalized = errors.New("order already finalized")
	ErrPaymentRefMismatch    = errors.New("order already paid with a different payment reference")
)

// TransitionError carries the order's actual status so clients can resynchronize.
type TransitionError struct {
	Current Status
	Action  Action
	kind    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s order in status %s", e.kind.Error(), e.Action, e.Current)
}

func (e *TransitionError) Is(target error) bool {
	return target == e.kind
}

func (e *TransitionError) Unwrap() error {
	return e.kind
}

func invalidTransition(current Status, action Action) error {
	return &TransitionError{Current: current, Action: action, kind: ErrInvalidTransition}
}

func alreadyFinalized(current Status, action Action) error {
	return &TransitionError{Current: current, Action: action, kind: ErrOrderAlreadyFinalized}
}

var transitions = map[Action]struct {
	from []Status
	to   Status
}{
	ActionPay:     {from: []Status{StatusPendingPayment}, to: StatusPendingShipment},
	ActionDeliver: {from: []Status{StatusPendingShipment}, to: StatusPendingReceipt},
	ActionReceive: {from: []Status{StatusPendingReceipt}, to: StatusCompleted},
	ActionCancel:  {from: []Status{StatusPendingPayment, StatusPendingShipment}, to: StatusCanceled},
}

// NextStatus returns the status reached by applying action to current.
func NextStatus(current Status, action Action) (Status, error) {
	if current.IsTerminal() {
		return current, alreadyFinalized(current, action)
	}
	t, ok := transitions[action]
	if !ok {
		return current, invalidTransition(current, action)
	}
	for _, from := range t.from {
		if from == current {
			return t.to, nil
		}
	}
	return current, invalidTransition(current, action)
}

func CanTransition(current Status, action Action) bool {
	_, err := NextStatus(current, action)
	return err == nil
}
