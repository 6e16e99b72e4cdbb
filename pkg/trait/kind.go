package trait

import (
	"strings"

	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/registry"
)

// Kind names a built-in pairing of conflict policy and composer.
type Kind string

const (
	// KindDefiner installs new methods; every key must be absent
	KindDefiner Kind = "definer"

	// KindOverrider replaces methods, passing the bound original to the
	// replacement; every key must be present
	KindOverrider Kind = "overrider"

	// KindPrepender guards existing methods with a before-hook; every key
	// must be present
	KindPrepender Kind = "prepender"

	// KindAppender follows existing methods with an after-hook; every key
	// must be present
	KindAppender Kind = "appender"
)

// KindSpec pairs the strategies that distinguish one kind from another.
// Everything else about a unit (validation, shared-behavior attachment,
// capability tagging) is kind-independent.
type KindSpec struct {
	Policy   ConflictPolicy
	Composer Composer
	Summary  string
}

var kinds = registry.New[KindSpec]()

func init() {
	registry.MustRegister(kinds, string(KindDefiner), KindSpec{
		Policy:   MustBeAbsent,
		Composer: Install,
		Summary:  "install new methods; fails if any key already resolves",
	})
	registry.MustRegister(kinds, string(KindOverrider), KindSpec{
		Policy:   MustBePresent,
		Composer: OverrideWithOriginal,
		Summary:  "replace methods, receiving the bound original as first argument",
	})
	registry.MustRegister(kinds, string(KindPrepender), KindSpec{
		Policy:   MustBePresent,
		Composer: GuardedPrepend,
		Summary:  "run before the original; a non-nil falsy result skips it",
	})
	registry.MustRegister(kinds, string(KindAppender), KindSpec{
		Policy:   MustBePresent,
		Composer: AppendDiscard,
		Summary:  "run after the original; the original's result is returned",
	})
}

// Kinds returns the registered kind names in sorted order
func Kinds() []string {
	return kinds.Names()
}

// LookupKind returns the spec registered for a kind
func LookupKind(kind Kind) (KindSpec, error) {
	spec, err := kinds.Get(string(kind))
	if err != nil {
		return KindSpec{}, errors.Newf(errors.ErrKindNotFound, "unknown trait kind '%s'", kind).
			WithDetail("kind", string(kind))
	}
	return spec, nil
}

// ParseKind converts a string (as found in manifests) to a Kind
func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, err := LookupKind(kind); err != nil {
		return "", err
	}
	return kind, nil
}
