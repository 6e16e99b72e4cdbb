package trait

import (
	"github.com/arthur-debert/traitmix/pkg/object"
)

// Composer is a strategy describing how a new implementation combines with
// the prior one already installed under the same name. The prior method is
// nil when the composer's kind guarantees absence (Install).
type Composer interface {
	// Name returns the composer's stable name for diagnostics
	Name() string

	// Compose returns the method to install given the prior entry and the
	// unit's new implementation
	Compose(prior object.Method, next object.Method) object.Method
}

// Composers for the built-in kinds.
var (
	// Install places the new implementation unchanged
	Install Composer = install{}

	// OverrideWithOriginal invokes the new implementation with the prior
	// one, bound to the receiver, prepended to the call arguments
	OverrideWithOriginal Composer = overrideWithOriginal{}

	// GuardedPrepend runs the new implementation first as a guard over the
	// prior one
	GuardedPrepend Composer = guardedPrepend{}

	// AppendDiscard runs the prior implementation first, then the new one
	// for its side effects only
	AppendDiscard Composer = appendDiscard{}
)

type install struct{}

func (install) Name() string { return "install" }

func (install) Compose(prior object.Method, next object.Method) object.Method {
	return next
}

type overrideWithOriginal struct{}

func (overrideWithOriginal) Name() string { return "override-with-original" }

// Compose hands the prior implementation to the new one as a Bound first
// argument. The new implementation's return value becomes the method's.
func (overrideWithOriginal) Compose(prior object.Method, next object.Method) object.Method {
	return func(self *object.Instance, args ...any) any {
		original := object.Bound(func(bargs ...any) any {
			return prior(self, bargs...)
		})
		return next(self, append([]any{original}, args...)...)
	}
}

type guardedPrepend struct{}

func (guardedPrepend) Name() string { return "guarded-prepend" }

// Compose runs the new implementation first with the original arguments.
// A nil result or any truthy result lets the prior implementation run and
// supply the return value; a non-nil falsy result skips it and the method
// returns nil.
func (guardedPrepend) Compose(prior object.Method, next object.Method) object.Method {
	return func(self *object.Instance, args ...any) any {
		guard := next(self, args...)
		if guard == nil || !object.Falsy(guard) {
			return prior(self, args...)
		}
		return nil
	}
}

type appendDiscard struct{}

func (appendDiscard) Name() string { return "unconditional-append" }

// Compose runs the prior implementation and captures its result, then runs
// the new implementation with the same arguments, discarding its result.
func (appendDiscard) Compose(prior object.Method, next object.Method) object.Method {
	return func(self *object.Instance, args ...any) any {
		result := prior(self, args...)
		next(self, args...)
		return result
	}
}
