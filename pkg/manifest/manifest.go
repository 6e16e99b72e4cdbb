// Package manifest loads declarative composition plans: classes described
// by their method names, trait units by kind and method list, and
// pipelines by target class and unit order. Conflict policies only inspect
// names, so a plan can be checked for composition conflicts without any
// real method bodies.
package manifest

import (
	"fmt"

	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/trait"
)

// ClassDef declares a class by name, optional parent, and method names
type ClassDef struct {
	Name    string   `toml:"name" yaml:"name"`
	Parent  string   `toml:"parent,omitempty" yaml:"parent,omitempty"`
	Methods []string `toml:"methods" yaml:"methods"`
}

// UnitDef declares a trait unit by kind and the method names it carries
type UnitDef struct {
	Name    string            `toml:"name" yaml:"name"`
	Kind    string            `toml:"kind" yaml:"kind"`
	Methods []string          `toml:"methods" yaml:"methods"`
	Shared  map[string]string `toml:"shared,omitempty" yaml:"shared,omitempty"`
}

// PipelineDef declares an ordered application of units to a target class
type PipelineDef struct {
	Target string   `toml:"target" yaml:"target"`
	Units  []string `toml:"units" yaml:"units"`
}

// Plan is a full composition manifest
type Plan struct {
	Classes   []ClassDef    `toml:"classes" yaml:"classes"`
	Units     []UnitDef     `toml:"units" yaml:"units"`
	Pipelines []PipelineDef `toml:"pipelines" yaml:"pipelines"`
}

// Validate checks referential integrity: unique names, known kinds,
// non-empty method lists, and pipeline references that resolve.
func (p *Plan) Validate() error {
	classes := make(map[string]ClassDef, len(p.Classes))
	for _, c := range p.Classes {
		if c.Name == "" {
			return errors.New(errors.ErrManifestValid, "class name cannot be empty")
		}
		if _, dup := classes[c.Name]; dup {
			return errors.Newf(errors.ErrManifestValid, "duplicate class '%s'", c.Name)
		}
		classes[c.Name] = c
	}

	for _, c := range p.Classes {
		if c.Parent == "" {
			continue
		}
		if _, ok := classes[c.Parent]; !ok {
			return errors.Newf(errors.ErrManifestValid,
				"class '%s' names unknown parent '%s'", c.Name, c.Parent)
		}
	}

	if err := p.checkParentCycles(classes); err != nil {
		return err
	}

	units := make(map[string]struct{}, len(p.Units))
	for _, u := range p.Units {
		if u.Name == "" {
			return errors.New(errors.ErrManifestValid, "unit name cannot be empty")
		}
		if _, dup := units[u.Name]; dup {
			return errors.Newf(errors.ErrManifestValid, "duplicate unit '%s'", u.Name)
		}
		units[u.Name] = struct{}{}

		if _, err := trait.ParseKind(u.Kind); err != nil {
			return errors.Wrapf(err, errors.ErrManifestValid,
				"unit '%s' has unknown kind '%s'", u.Name, u.Kind)
		}

		if len(u.Methods) == 0 {
			return errors.Newf(errors.ErrManifestValid, "unit '%s' declares no methods", u.Name)
		}
		seen := make(map[string]struct{}, len(u.Methods))
		for _, m := range u.Methods {
			if m == "" {
				return errors.Newf(errors.ErrManifestValid, "unit '%s' declares an empty method name", u.Name)
			}
			if _, dup := seen[m]; dup {
				return errors.Newf(errors.ErrManifestValid,
					"unit '%s' declares method '%s' twice", u.Name, m)
			}
			seen[m] = struct{}{}
		}
	}

	for i, pl := range p.Pipelines {
		if _, ok := classes[pl.Target]; !ok {
			return errors.Newf(errors.ErrManifestValid,
				"pipeline %d targets unknown class '%s'", i, pl.Target)
		}
		if len(pl.Units) == 0 {
			return errors.Newf(errors.ErrManifestValid, "pipeline %d lists no units", i)
		}
		for _, name := range pl.Units {
			if _, ok := units[name]; !ok {
				return errors.Newf(errors.ErrManifestValid,
					"pipeline %d references unknown unit '%s'", i, name)
			}
		}
	}

	return nil
}

func (p *Plan) checkParentCycles(classes map[string]ClassDef) error {
	for _, c := range p.Classes {
		seen := map[string]struct{}{c.Name: {}}
		for cur := c.Parent; cur != ""; {
			if _, looped := seen[cur]; looped {
				return errors.Newf(errors.ErrManifestValid,
					"class '%s' is part of a parent cycle", c.Name)
			}
			seen[cur] = struct{}{}
			cur = classes[cur].Parent
		}
	}
	return nil
}

// String summarizes the plan's shape
func (p *Plan) String() string {
	return fmt.Sprintf("plan{classes: %d, units: %d, pipelines: %d}",
		len(p.Classes), len(p.Units), len(p.Pipelines))
}
