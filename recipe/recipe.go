// Package recipe loads declarative YAML descriptions of selector sets and
// builds them through the selector package. A recipe never contains CSS
// selector text - only typed parts - so nothing here parses CSS.
package recipe

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"cssel/selector"
)

type (
	// PartSpec describes one selector part. For type "combine" Left, Right
	// and Separator are used instead of Value.
	PartSpec struct {
		Type      string `yaml:"type" validate:"required,oneof=element id class attr pseudo-class pseudo-element combine"`
		Value     string `yaml:"value,omitempty"`
		Slug      bool   `yaml:"slug,omitempty"`
		Separator string `yaml:"separator,omitempty"`
		Left      *Spec  `yaml:"left,omitempty"`
		Right     *Spec  `yaml:"right,omitempty"`
	}

	// Spec is an ordered list of parts for one selector.
	Spec struct {
		Parts []PartSpec `yaml:"parts" validate:"required,min=1,dive"`
	}

	// Entry is a named selector in a recipe.
	Entry struct {
		Name string `yaml:"name" validate:"required"`
		Spec `yaml:",inline"`
	}

	// Recipe is a full recipe file.
	Recipe struct {
		Version   int     `yaml:"version" validate:"eq=1"`
		Selectors []Entry `yaml:"selectors" validate:"required,min=1,dive"`
	}
)

// Result is one successfully built selector.
type Result struct {
	Name     string
	Selector string
}

// Load decodes and validates recipe data. Unknown fields are rejected so
// typos in hand-written recipes surface early.
func Load(data []byte) (*Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe data: %w", err)
	}
	if err := gencfg.Validate(&r); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	return &r, nil
}

// Build builds every selector in the recipe. Failures do not stop the run:
// each one is logged and collected, successful results are still returned.
// With sortNames set results come back in natural name order, otherwise in
// recipe order.
func (r *Recipe) Build(log *zap.Logger, sortNames bool) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		results []Result
		errs    error
	)
	for _, entry := range r.Selectors {
		s, err := buildSpec(&entry.Spec)
		if err != nil {
			log.Warn("Skipping selector", zap.String("name", entry.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("selector '%s': %w", entry.Name, err))
			continue
		}
		log.Debug("Built selector", zap.String("name", entry.Name), zap.String("selector", s))
		results = append(results, Result{Name: entry.Name, Selector: s})
	}

	if sortNames {
		sort.Slice(results, func(i, j int) bool {
			return natural.Less(results[i].Name, results[j].Name)
		})
	}
	return results, errs
}

// buildSpec runs one spec through the selector builder and stringifies it.
func buildSpec(s *Spec) (string, error) {
	b, err := builderFor(s)
	if err != nil {
		return "", err
	}
	return b.Stringify()
}

// builderFor translates spec parts into builder calls. Builder contract
// violations (duplicate or out-of-order parts) stick to the chain and are
// surfaced by the caller's Stringify.
func builderFor(s *Spec) (*selector.Builder, error) {
	b := new(selector.Builder)
	for i, p := range s.Parts {
		value := p.Value
		if p.Slug && p.Type != "combine" {
			value = slug.Make(value)
		}

		switch p.Type {
		case "element":
			b = b.Element(value)
		case "id":
			b = b.ID(value)
		case "class":
			b = b.Class(value)
		case "attr":
			b = b.Attr(value)
		case "pseudo-class":
			b = b.PseudoClass(value)
		case "pseudo-element":
			b = b.PseudoElement(value)
		case "combine":
			if p.Left == nil || p.Right == nil {
				return nil, fmt.Errorf("part %d: combine requires both left and right", i+1)
			}
			left, err := builderFor(p.Left)
			if err != nil {
				return nil, fmt.Errorf("part %d: left: %w", i+1, err)
			}
			right, err := builderFor(p.Right)
			if err != nil {
				return nil, fmt.Errorf("part %d: right: %w", i+1, err)
			}
			b = b.Combine(left, p.Separator, right)
		default:
			// validator catches this on Load, but specs can be built in code too
			return nil, fmt.Errorf("part %d: unknown part type '%s'", i+1, p.Type)
		}
	}
	return b, nil
}
