package records

import "fmt"

// PersistenceError wraps a failed collection write. The store rewrite
// is all-or-nothing, so prior state is unchanged when this surfaces.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("unable to write collection %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ReferentialIntegrityError reports a save that references an entity
// which does not exist.
type ReferentialIntegrityError struct {
	Kind string
	ID   string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.ID)
}

// ValidationError reports a field value outside its allowed range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
