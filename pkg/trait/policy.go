package trait

import (
	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/object"
)

// ConflictPolicy is a pure predicate deciding whether a behavior-map key may
// be touched on a target class. Policies never mutate anything; they only
// inspect name resolution.
type ConflictPolicy interface {
	// Name returns the policy's stable name for diagnostics
	Name() string

	// Check returns nil if the key may be touched, or a conflict error
	// naming the key and class otherwise
	Check(target *object.Class, key string) *errors.TraitError
}

// Policies for the built-in kinds. Resolution includes inherited methods:
// a name defined on an ancestor counts as present, matching how dispatch
// resolves it.
var (
	// MustBeAbsent gates installation of brand-new methods
	MustBeAbsent ConflictPolicy = mustBeAbsent{}

	// MustBePresent gates composition with an existing method
	MustBePresent ConflictPolicy = mustBePresent{}
)

type mustBeAbsent struct{}

func (mustBeAbsent) Name() string { return "must-be-absent" }

func (mustBeAbsent) Check(target *object.Class, key string) *errors.TraitError {
	if target.Responds(key) {
		return errors.Newf(errors.ErrAbsenceViolation,
			"method '%s' already defined on class '%s'", key, target.Name()).
			WithDetail("key", key).
			WithDetail("class", target.Name())
	}
	return nil
}

type mustBePresent struct{}

func (mustBePresent) Name() string { return "must-be-present" }

func (mustBePresent) Check(target *object.Class, key string) *errors.TraitError {
	if !target.Responds(key) {
		return errors.Newf(errors.ErrPresenceViolation,
			"method '%s' not defined on class '%s'", key, target.Name()).
			WithDetail("key", key).
			WithDetail("class", target.Name())
	}
	return nil
}
