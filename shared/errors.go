package shared

import (
	"fmt"
)

// ValidationError rejects empty or over-long text. The message names the violated bound.
type ValidationError struct {
	Field  string
	Min    int
	Max    int
	Length int
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s must be %d–%d characters: %s", e.Field, e.Min, e.Max, e.Detail)
	}
	return fmt.Sprintf("%s must be %d–%d characters (got %d)", e.Field, e.Min, e.Max, e.Length)
}

// SlotConflictError means the author already has a drop in this slot.
type SlotConflictError struct {
	Slot Slot
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("already dropped in the %s slot of %s", e.Slot.Period, e.Slot.Date)
}

// AuthorizationError never names the account that does own the resource.
type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not permitted to %s", e.Action)
}

type NotFoundError struct {
	Kind string
	Id   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Id)
}

type HandleTakenError struct {
	Handle string
}

func (e *HandleTakenError) Error() string {
	return fmt.Sprintf("handle is already taken: %s", e.Handle)
}

type UnauthenticatedError struct {
}

func (e *UnauthenticatedError) Error() string {
	return "no signed-in viewer"
}
