package records

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID returns a fresh entity id: a ULID carrying a millisecond time
// component followed by a random component. Uniqueness is probabilistic
// and ids from different processes do not sort strictly by creation
// order.
func NewID() string {
	return strings.ToLower(ulid.Make().String())
}
