package capability

import (
	"fmt"

	"github.com/google/uuid"
)

// Tag is an opaque marker minted for a trait unit at construction time.
// The identifier is unexported and uuid-based, so tags cannot be forged:
// the only way to hold a matching tag is to hold the unit that minted it.
type Tag struct {
	id    string
	label string
}

// NewTag mints a fresh tag. The label is diagnostic only; identity is the
// uuid.
func NewTag(label string) Tag {
	return Tag{
		id:    uuid.NewString(),
		label: label,
	}
}

// Label returns the diagnostic label the tag was minted with
func (t Tag) Label() string {
	return t.label
}

// IsZero reports whether the tag was never minted
func (t Tag) IsZero() bool {
	return t.id == ""
}

// String implements fmt.Stringer
func (t Tag) String() string {
	if t.label != "" {
		return fmt.Sprintf("%s(%s)", t.label, t.id)
	}
	return t.id
}
