package vec

import "fmt"

// IncompatibleTypeError indicates no common type exists for a pair of descriptors
type IncompatibleTypeError struct {
	A Descriptor
	B Descriptor
}

func (e *IncompatibleTypeError) Error() string {
	return fmt.Sprintf("no common type for %s and %s", e.A, e.B)
}

func NewIncompatibleType(a, b Descriptor) *IncompatibleTypeError {
	return &IncompatibleTypeError{A: a, B: b}
}

// IncompatibleCastError indicates a value could not be cast to the target descriptor
type IncompatibleCastError struct {
	From   Descriptor
	To     Descriptor
	Reason string
}

func (e *IncompatibleCastError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot cast %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("cannot cast %s to %s: %s", e.From, e.To, e.Reason)
}

func NewIncompatibleCast(from, to Descriptor) *IncompatibleCastError {
	return &IncompatibleCastError{From: from, To: to}
}

// RegistrationConflictError indicates two registrations claimed the same
// dispatch table entry. Registration conflicts are programming errors and
// surface as panics from the MustRegister functions at startup.
type RegistrationConflictError struct {
	Table string
	A     Kind
	B     Kind
}

func (e *RegistrationConflictError) Error() string {
	if e.B == "" {
		return fmt.Sprintf("%s entry for %s registered twice", e.Table, e.A)
	}
	return fmt.Sprintf("%s entry for (%s, %s) registered twice", e.Table, e.A, e.B)
}

func NewRegistrationConflict(table string, a, b Kind) *RegistrationConflictError {
	return &RegistrationConflictError{Table: table, A: a, B: b}
}
