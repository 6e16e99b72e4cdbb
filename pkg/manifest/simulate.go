package manifest

import (
	"github.com/arthur-debert/traitmix/pkg/capability"
	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/logging"
	"github.com/arthur-debert/traitmix/pkg/object"
	"github.com/arthur-debert/traitmix/pkg/trait"
)

// StepResult records one unit application inside a simulated pipeline
type StepResult struct {
	Unit    string
	Kind    trait.Kind
	Err     error
	Skipped bool
}

// PipelineResult records a simulated pipeline run. Err is the first
// failing step's error; steps after it are marked skipped.
type PipelineResult struct {
	Target string
	Steps  []StepResult
	Err    error
}

// Report aggregates a plan simulation
type Report struct {
	Results   []PipelineResult
	Succeeded int
	Failed    int
}

// HasConflicts reports whether any pipeline aborted
func (r *Report) HasConflicts() bool {
	return r.Failed > 0
}

// Simulate validates the plan, builds stub classes and units, and runs
// every pipeline. Each pipeline gets a fresh build of its target class,
// so one pipeline's mutations never leak into another's run.
func (p *Plan) Simulate() (*Report, error) {
	logger := logging.GetLogger("manifest.simulate")

	if err := p.Validate(); err != nil {
		return nil, err
	}

	units := make(map[string]*trait.Unit, len(p.Units))
	caps := capability.NewRegistry()
	for _, def := range p.Units {
		u, err := buildUnit(def, caps)
		if err != nil {
			return nil, err
		}
		units[def.Name] = u
	}

	report := &Report{}
	for _, def := range p.Pipelines {
		target, err := p.buildClass(def.Target)
		if err != nil {
			return nil, err
		}

		result := runPipeline(def, target, units)
		if result.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Results = append(report.Results, result)
	}

	logger.Info().
		Int("pipelines", len(report.Results)).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("Simulation completed")

	return report, nil
}

// stub is the placeholder implementation behind every simulated method
func stub(self *object.Instance, args ...any) any { return nil }

func buildUnit(def UnitDef, caps *capability.Registry) (*trait.Unit, error) {
	kind, err := trait.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}

	behavior := make(object.BehaviorMap, len(def.Methods))
	for _, m := range def.Methods {
		behavior[m] = stub
	}

	opts := []trait.Option{
		trait.WithName(def.Name),
		trait.WithCapabilityRegistry(caps),
	}
	for name, value := range def.Shared {
		opts = append(opts, trait.WithShared(name, value))
	}

	return trait.New(kind, behavior, opts...)
}

// buildClass constructs a fresh stub class, recursing into parents
func (p *Plan) buildClass(name string) (*object.Class, error) {
	defs := make(map[string]ClassDef, len(p.Classes))
	for _, c := range p.Classes {
		defs[c.Name] = c
	}

	var build func(name string) (*object.Class, error)
	build = func(name string) (*object.Class, error) {
		def, ok := defs[name]
		if !ok {
			return nil, errors.Newf(errors.ErrManifestValid, "unknown class '%s'", name)
		}

		var parent *object.Class
		if def.Parent != "" {
			var err error
			parent, err = build(def.Parent)
			if err != nil {
				return nil, err
			}
		}

		cls := object.NewClass(def.Name, parent)
		for _, m := range def.Methods {
			if err := cls.Define(m, stub); err != nil {
				return nil, err
			}
		}
		return cls, nil
	}

	return build(name)
}

func runPipeline(def PipelineDef, target *object.Class, units map[string]*trait.Unit) PipelineResult {
	result := PipelineResult{Target: def.Target}

	for _, name := range def.Units {
		u := units[name]

		if result.Err != nil {
			result.Steps = append(result.Steps, StepResult{
				Unit:    name,
				Kind:    u.Kind(),
				Skipped: true,
			})
			continue
		}

		_, err := u.Apply(target)
		result.Steps = append(result.Steps, StepResult{
			Unit: name,
			Kind: u.Kind(),
			Err:  err,
		})
		if err != nil {
			result.Err = err
		}
	}

	return result
}
