package object

import (
	"sort"

	"github.com/arthur-debert/traitmix/pkg/errors"
)

// Method is an implementation installed under a name in a class's method
// table. The receiver is passed explicitly; there is no implicit binding.
type Method func(self *Instance, args ...any) any

// Bound is a method closed over its receiver. Prior implementations are
// handed to overriding methods in this shape.
type Bound func(args ...any) any

// BehaviorMap maps method names to implementations.
type BehaviorMap map[string]Method

// Keys returns the map's keys in sorted order. Go maps are unordered, so
// sorted order is the deterministic order used for conflict reporting.
func (b BehaviorMap) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Class is a named, caller-owned mutable method table with an optional
// parent class forming a single-inheritance resolution chain.
//
// A class is not safe for concurrent mutation. The expected pattern is to
// compose classes during a single-threaded setup phase and treat them as
// read-only afterwards.
type Class struct {
	name    string
	parent  *Class
	methods map[string]Method
}

// NewClass creates a class with the given name and optional parent (nil for
// a root class).
func NewClass(name string, parent *Class) *Class {
	return &Class{
		name:    name,
		parent:  parent,
		methods: make(map[string]Method),
	}
}

// Name returns the class name
func (c *Class) Name() string {
	return c.name
}

// Parent returns the parent class, or nil for a root class
func (c *Class) Parent() *Class {
	return c.parent
}

// Define installs a method under the given name, replacing any prior entry
// on this class. Inherited entries are shadowed, not modified.
func (c *Class) Define(name string, m Method) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "method name cannot be empty")
	}
	if m == nil {
		return errors.Newf(errors.ErrInvalidInput, "method '%s' cannot be nil", name)
	}
	c.methods[name] = m
	return nil
}

// Resolve looks up a method by name, walking the parent chain.
func (c *Class) Resolve(name string) (Method, bool) {
	for cls := c; cls != nil; cls = cls.parent {
		if m, ok := cls.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Responds reports whether the name resolves on this class or an ancestor.
// Conflict policies are predicates over this check.
func (c *Class) Responds(name string) bool {
	_, ok := c.Resolve(name)
	return ok
}

// DefinesOwn reports whether the name is defined on this class itself,
// ignoring the parent chain
func (c *Class) DefinesOwn(name string) bool {
	_, ok := c.methods[name]
	return ok
}

// MethodNames returns the names defined on this class itself, sorted
func (c *Class) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a class with a copy of this class's own method table and
// the same parent. Applying a unit to the clone leaves the original
// untouched, which is the persistent alternative to in-place application.
func (c *Class) Clone() *Class {
	methods := make(map[string]Method, len(c.methods))
	for name, m := range c.methods {
		methods[name] = m
	}
	return &Class{
		name:    c.name,
		parent:  c.parent,
		methods: methods,
	}
}

// New creates an instance of this class
func (c *Class) New() *Instance {
	return &Instance{
		class:  c,
		fields: make(map[string]any),
	}
}
