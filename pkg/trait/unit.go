package trait

import (
	"sort"
	"strings"

	"github.com/arthur-debert/traitmix/pkg/capability"
	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/logging"
	"github.com/arthur-debert/traitmix/pkg/object"
)

// SharedEntry is a value attached to a unit itself rather than to target
// instances. Hidden entries resolve through Shared but are omitted from
// SharedNames, which is how caller-declared enumerability is preserved.
type SharedEntry struct {
	Value  any
	Hidden bool
}

// Unit is an immutable trait: a behavior map plus the conflict policy and
// composer of its kind, applied to classes as a transformer. A unit is
// constructed once and may be applied to many classes; application mutates
// the target, never the unit.
type Unit struct {
	name     string
	kind     Kind
	behavior object.BehaviorMap
	shared   map[string]SharedEntry
	policy   ConflictPolicy
	composer Composer
	tag      capability.Tag
	caps     *capability.Registry
}

// Option configures unit construction
type Option func(*Unit)

// WithName sets the unit's diagnostic name. Without it the name is derived
// from the kind and behavior keys.
func WithName(name string) Option {
	return func(u *Unit) {
		u.name = name
	}
}

// WithShared attaches an enumerable shared entry to the unit
func WithShared(name string, value any) Option {
	return func(u *Unit) {
		u.shared[name] = SharedEntry{Value: value}
	}
}

// WithHiddenShared attaches a non-enumerable shared entry to the unit
func WithHiddenShared(name string, value any) Option {
	return func(u *Unit) {
		u.shared[name] = SharedEntry{Value: value, Hidden: true}
	}
}

// WithCapabilityRegistry routes capability marks to a specific registry
// instead of the process-wide default. Tests use this for isolation.
func WithCapabilityRegistry(reg *capability.Registry) Option {
	return func(u *Unit) {
		u.caps = reg
	}
}

// New constructs a unit of the given kind. The behavior map must be
// non-empty with no nil implementations. Construction performs no lookups
// against any target; conflicts surface only at Apply time.
func New(kind Kind, behavior object.BehaviorMap, opts ...Option) (*Unit, error) {
	spec, err := LookupKind(kind)
	if err != nil {
		return nil, err
	}

	if len(behavior) == 0 {
		return nil, errors.New(errors.ErrUnitInvalid, "behavior map cannot be empty").
			WithDetail("kind", string(kind))
	}

	keys := behavior.Keys()
	methods := make(object.BehaviorMap, len(behavior))
	for _, key := range keys {
		if key == "" {
			return nil, errors.New(errors.ErrUnitInvalid, "behavior map key cannot be empty").
				WithDetail("kind", string(kind))
		}
		if behavior[key] == nil {
			return nil, errors.Newf(errors.ErrUnitInvalid, "behavior entry '%s' is nil", key).
				WithDetail("kind", string(kind)).
				WithDetail("key", key)
		}
		methods[key] = behavior[key]
	}

	u := &Unit{
		kind:     kind,
		behavior: methods,
		shared:   make(map[string]SharedEntry),
		policy:   spec.Policy,
		composer: spec.Composer,
		caps:     capability.Default(),
	}

	for _, opt := range opts {
		opt(u)
	}

	if u.name == "" {
		u.name = string(kind) + "[" + strings.Join(keys, ",") + "]"
	}
	u.tag = capability.NewTag(u.name)

	return u, nil
}

// MustNew constructs a unit and panics on invalid input. Units are usually
// process-wide configuration built during setup, where construction errors
// are programming errors.
func MustNew(kind Kind, behavior object.BehaviorMap, opts ...Option) *Unit {
	u, err := New(kind, behavior, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

// Definer constructs a unit that installs new methods
func Definer(behavior object.BehaviorMap, opts ...Option) (*Unit, error) {
	return New(KindDefiner, behavior, opts...)
}

// Overrider constructs a unit that replaces existing methods, passing the
// bound original as the replacement's first argument
func Overrider(behavior object.BehaviorMap, opts ...Option) (*Unit, error) {
	return New(KindOverrider, behavior, opts...)
}

// Prepender constructs a unit that guards existing methods
func Prepender(behavior object.BehaviorMap, opts ...Option) (*Unit, error) {
	return New(KindPrepender, behavior, opts...)
}

// Appender constructs a unit that follows existing methods
func Appender(behavior object.BehaviorMap, opts ...Option) (*Unit, error) {
	return New(KindAppender, behavior, opts...)
}

// Name returns the unit's diagnostic name
func (u *Unit) Name() string {
	return u.name
}

// Kind returns the unit's kind
func (u *Unit) Kind() Kind {
	return u.kind
}

// Tag returns the capability tag minted for this unit
func (u *Unit) Tag() capability.Tag {
	return u.tag
}

// Methods returns the behavior map's keys in sorted order
func (u *Unit) Methods() []string {
	return u.behavior.Keys()
}

// Shared returns a shared entry's value, hidden or not
func (u *Unit) Shared(name string) (any, bool) {
	entry, ok := u.shared[name]
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// SharedNames returns the enumerable shared entry names in sorted order
func (u *Unit) SharedNames() []string {
	names := make([]string, 0, len(u.shared))
	for name, entry := range u.shared {
		if entry.Hidden {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanApply checks every behavior key against the target under the unit's
// conflict policy without mutating anything. It returns the first
// violation in sorted key order, or nil.
func (u *Unit) CanApply(target *object.Class) error {
	if target == nil {
		return errors.New(errors.ErrInvalidInput, "target class cannot be nil")
	}
	for _, key := range u.behavior.Keys() {
		if terr := u.policy.Check(target, key); terr != nil {
			return terr.
				WithDetail("unit", u.name).
				WithDetail("kind", string(u.kind))
		}
	}
	return nil
}

// Apply validates every behavior key, composes each new implementation
// with the prior entry per the unit's composer, installs the composed
// methods, and marks the target in the capability registry. The same
// mutated class reference is returned.
//
// Application is atomic: a conflict on any key leaves the target's method
// table exactly as it was.
func (u *Unit) Apply(target *object.Class) (*object.Class, error) {
	logger := logging.GetLogger("trait.Unit")

	if err := u.CanApply(target); err != nil {
		logger.Debug().
			Str("unit", u.name).
			Err(err).
			Msg("Conflict check failed")
		return nil, err
	}

	// Compose into a staging table first so a composer never observes a
	// half-mutated class
	keys := u.behavior.Keys()
	staged := make(map[string]object.Method, len(keys))
	for _, key := range keys {
		prior, _ := target.Resolve(key)
		staged[key] = u.composer.Compose(prior, u.behavior[key])
	}

	for _, key := range keys {
		if err := target.Define(key, staged[key]); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "installing composed method '%s'", key)
		}
	}

	u.caps.Mark(target, u.tag)

	logger.Debug().
		Str("unit", u.name).
		Str("kind", string(u.kind)).
		Str("class", target.Name()).
		Strs("methods", keys).
		Msg("Trait applied")

	return target, nil
}

// Derive applies the unit to a clone of the target, leaving the original
// untouched. The composed class is returned; callers track the new
// reference instead of assuming in-place mutation.
func (u *Unit) Derive(target *object.Class) (*object.Class, error) {
	if target == nil {
		return nil, errors.New(errors.ErrInvalidInput, "target class cannot be nil")
	}
	return u.Apply(target.Clone())
}

// Implements reports whether the instance's class, or any ancestor, has
// had this unit applied.
func (u *Unit) Implements(instance *object.Instance) bool {
	return u.caps.Has(instance, u.tag)
}

// HasCapability reports whether an instance supports the trait unit. It is
// the free-function spelling of Unit.Implements.
func HasCapability(u *Unit, instance *object.Instance) bool {
	if u == nil {
		return false
	}
	return u.Implements(instance)
}
