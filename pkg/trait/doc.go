// Package trait implements the composition engine: units built from
// behavior maps that install, override, prepend to, or append to named
// methods on a class, gated by conflict policies and marked with
// capability tags.
//
// The four kinds differ only in their conflict policy and composer
// pairing; a single parameterized constructor carries the shared
// validation, shared-behavior attachment, and tagging logic.
package trait
