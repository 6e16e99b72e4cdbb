package object

import (
	"github.com/arthur-debert/traitmix/pkg/errors"
)

// Instance is an object constructed from a class: a field bag plus a class
// pointer through which methods are resolved.
type Instance struct {
	class  *Class
	fields map[string]any
}

// Class returns the class this instance was constructed from
func (i *Instance) Class() *Class {
	return i.class
}

// Get returns a field value
func (i *Instance) Get(name string) (any, bool) {
	v, ok := i.fields[name]
	return v, ok
}

// Set stores a field value
func (i *Instance) Set(name string, value any) {
	i.fields[name] = value
}

// Call invokes the named method with this instance as receiver.
// Resolution walks the class's parent chain.
func (i *Instance) Call(name string, args ...any) (any, error) {
	m, ok := i.class.Resolve(name)
	if !ok {
		return nil, errors.Newf(errors.ErrMethodNotFound, "class '%s' has no method '%s'", i.class.Name(), name).
			WithDetail("class", i.class.Name()).
			WithDetail("method", name)
	}
	return m(i, args...), nil
}

// MustCall invokes the named method and panics if it does not resolve
func (i *Instance) MustCall(name string, args ...any) any {
	result, err := i.Call(name, args...)
	if err != nil {
		panic(err)
	}
	return result
}

// Bind returns the named method closed over this instance, or false if the
// name does not resolve.
func (i *Instance) Bind(name string) (Bound, bool) {
	m, ok := i.class.Resolve(name)
	if !ok {
		return nil, false
	}
	return func(args ...any) any {
		return m(i, args...)
	}, true
}
