// Package pipeline chains class transformers into one, applied left to
// right. The pipeline performs no conflict checking of its own; each
// stage's own checks fire in turn, and the first failing stage aborts the
// rest.
package pipeline

import (
	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/logging"
	"github.com/arthur-debert/traitmix/pkg/object"
)

// Transformer is anything that maps a class to a class. Trait units
// satisfy it; so does a Pipeline, which makes pipelines nestable.
type Transformer interface {
	Apply(target *object.Class) (*object.Class, error)
}

// TransformerFunc adapts a plain function to a Transformer
type TransformerFunc func(target *object.Class) (*object.Class, error)

// Apply implements Transformer
func (f TransformerFunc) Apply(target *object.Class) (*object.Class, error) {
	return f(target)
}

// Pipeline applies its stages in order. Order is load-bearing: a definer
// must run before an overrider of the same method, since the overrider
// requires the method to already be present.
type Pipeline struct {
	stages []Transformer
}

// New composes stages left to right: New(a, b).Apply(c) is b(a(c))
func New(stages ...Transformer) *Pipeline {
	return &Pipeline{stages: stages}
}

// Len returns the number of stages
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Apply runs every stage in order, feeding each stage's result to the
// next, and aborts on the first stage error.
func (p *Pipeline) Apply(target *object.Class) (*object.Class, error) {
	logger := logging.GetLogger("pipeline")

	if target == nil {
		return nil, errors.New(errors.ErrInvalidInput, "target class cannot be nil")
	}

	current := target
	for i, stage := range p.stages {
		if stage == nil {
			return nil, errors.Newf(errors.ErrInvalidInput, "pipeline stage %d is nil", i)
		}

		// The stage's own error is returned untouched so its code and
		// details (unit, kind, key) survive to the caller
		next, err := stage.Apply(current)
		if err != nil {
			logger.Debug().
				Int("stage", i).
				Str("class", current.Name()).
				Err(err).
				Msg("Pipeline aborted")
			return nil, err
		}
		current = next
	}

	logger.Debug().
		Int("stages", len(p.stages)).
		Str("class", current.Name()).
		Msg("Pipeline completed")

	return current, nil
}
