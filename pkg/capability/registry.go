package capability

import (
	"sort"
	"sync"

	"github.com/arthur-debert/traitmix/pkg/object"
)

// Registry records which capability tags have been applied to which
// classes. It is an explicit mapping from class identity to tag set,
// queried through this interface rather than through hidden instance
// fields, so the "supports trait X" check works across classes that share
// no common ancestor.
type Registry struct {
	mu    sync.RWMutex
	marks map[*object.Class]map[Tag]struct{}
}

// NewRegistry creates an empty capability registry
func NewRegistry() *Registry {
	return &Registry{
		marks: make(map[*object.Class]map[Tag]struct{}),
	}
}

// Mark records that the tag's unit has been applied to the class.
// Zero tags are ignored.
func (r *Registry) Mark(class *object.Class, tag Tag) {
	if class == nil || tag.IsZero() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.marks[class]
	if !ok {
		set = make(map[Tag]struct{})
		r.marks[class] = set
	}
	set[tag] = struct{}{}
}

// HasClass reports whether the class, or any ancestor in its construction
// chain, has been marked with the tag.
func (r *Registry) HasClass(class *object.Class, tag Tag) bool {
	if tag.IsZero() {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for cls := class; cls != nil; cls = cls.Parent() {
		if set, ok := r.marks[cls]; ok {
			if _, marked := set[tag]; marked {
				return true
			}
		}
	}
	return false
}

// Has reports whether the instance's class answers true to HasClass.
// This is a structural check: two unrelated classes marked with the same
// tag both produce instances that answer true.
func (r *Registry) Has(instance *object.Instance, tag Tag) bool {
	if instance == nil {
		return false
	}
	return r.HasClass(instance.Class(), tag)
}

// Tags returns every tag marked on the class or its ancestors, sorted by
// string form for determinism.
func (r *Registry) Tags(class *object.Class) []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Tag]struct{})
	var tags []Tag
	for cls := class; cls != nil; cls = cls.Parent() {
		for tag := range r.marks[cls] {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].String() < tags[j].String()
	})
	return tags
}

// defaultRegistry backs the package-level functions. Units mark it when
// applied through the trait package.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// Mark records a tag on a class in the default registry
func Mark(class *object.Class, tag Tag) {
	defaultRegistry.Mark(class, tag)
}

// Has checks an instance against the default registry
func Has(instance *object.Instance, tag Tag) bool {
	return defaultRegistry.Has(instance, tag)
}

// HasClass checks a class against the default registry
func HasClass(class *object.Class, tag Tag) bool {
	return defaultRegistry.HasClass(class, tag)
}

// Tags lists a class's tags from the default registry
func Tags(class *object.Class) []Tag {
	return defaultRegistry.Tags(class)
}
