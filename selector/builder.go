// Package selector assembles CSS selector strings from typed parts. It does
// not parse or match selectors - it is strictly a producer, enforcing the
// canonical part order (element, id, class, attribute, pseudo-class,
// pseudo-element) and uniqueness of the parts which CSS allows only once.
package selector

import "strings"

// Kind identifies the type of a selector part. The declaration order of the
// rankable kinds is their canonical rank - do not reorder.
type Kind int

const (
	KindElement Kind = iota
	KindID
	KindClass
	KindAttr
	KindPseudoClass
	KindPseudoElement
	// KindCombined carries a pre-serialized sub-selector joined by a
	// combinator. It has no rank and is skipped by validation.
	KindCombined
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindID:
		return "id"
	case KindClass:
		return "class"
	case KindAttr:
		return "attribute"
	case KindPseudoClass:
		return "pseudo-class"
	case KindPseudoElement:
		return "pseudo-element"
	case KindCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// rankable reports whether the kind participates in ordering checks.
func (k Kind) rankable() bool {
	return k >= KindElement && k <= KindPseudoElement
}

// unique reports whether the kind may occur at most once per selector.
func (k Kind) unique() bool {
	return k == KindElement || k == KindID || k == KindPseudoElement
}

// Part is a single accumulated selector fragment. Text is stored already
// punctuated ("#main", ".editable", "::before") so stringification is a
// plain concatenation.
type Part struct {
	Kind Kind
	Text string
}

// Builder accumulates selector parts for one selector under construction.
// Every facade function returns a fresh Builder, so independent chains never
// share state. The zero value is ready to use.
//
// A contract violation (duplicate or out-of-order part) is recorded at the
// offending append and sticks: later appends become no-ops and the first
// error is reported by Err and Stringify.
type Builder struct {
	parts []Part
	err   error
}

// Facade entry points. Each starts a new, independent chain.

// Element starts a selector with an element part, e.g. "div".
func Element(name string) *Builder { return new(Builder).Element(name) }

// ID starts a selector with an id part; the "#" prefix is added here.
func ID(name string) *Builder { return new(Builder).ID(name) }

// Class starts a selector with a class part; the "." prefix is added here.
func Class(name string) *Builder { return new(Builder).Class(name) }

// Attr starts a selector with an attribute part; text is wrapped in "[]"
// verbatim, CSS token legality is the caller's business.
func Attr(text string) *Builder { return new(Builder).Attr(text) }

// PseudoClass starts a selector with a pseudo-class part (":" prefix).
func PseudoClass(name string) *Builder { return new(Builder).PseudoClass(name) }

// PseudoElement starts a selector with a pseudo-element part ("::" prefix).
func PseudoElement(name string) *Builder { return new(Builder).PseudoElement(name) }

// Combine starts a selector from two fully built sub-selectors joined by a
// combinator.
func Combine(left *Builder, sep string, right *Builder) *Builder {
	return new(Builder).Combine(left, sep, right)
}

// Chain continuations.

// Element appends an element part to the chain.
func (b *Builder) Element(name string) *Builder {
	return b.append(Part{Kind: KindElement, Text: name})
}

// ID appends an id part to the chain.
func (b *Builder) ID(name string) *Builder {
	return b.append(Part{Kind: KindID, Text: "#" + name})
}

// Class appends a class part to the chain.
func (b *Builder) Class(name string) *Builder {
	return b.append(Part{Kind: KindClass, Text: "." + name})
}

// Attr appends an attribute part to the chain.
func (b *Builder) Attr(text string) *Builder {
	return b.append(Part{Kind: KindAttr, Text: "[" + text + "]"})
}

// PseudoClass appends a pseudo-class part to the chain.
func (b *Builder) PseudoClass(name string) *Builder {
	return b.append(Part{Kind: KindPseudoClass, Text: ":" + name})
}

// PseudoElement appends a pseudo-element part to the chain.
func (b *Builder) PseudoElement(name string) *Builder {
	return b.append(Part{Kind: KindPseudoElement, Text: "::" + name})
}

// Combine appends a combined part: both sub-builders are stringified and
// joined by the separator between single spaces. The separator is emitted
// verbatim and is not validated - CSS defines " ", "+", "~" and ">" but
// nothing here depends on that. Both sub-builders are consumed; if either
// carries an error it is propagated to this chain. Combined parts are opaque
// to the ordering and uniqueness checks.
func (b *Builder) Combine(left *Builder, sep string, right *Builder) *Builder {
	if b.err != nil {
		return b
	}

	ls, err := left.Stringify()
	if err != nil {
		b.err = err
		return b
	}
	rs, err := right.Stringify()
	if err != nil {
		b.err = err
		return b
	}

	return b.append(Part{Kind: KindCombined, Text: ls + " " + sep + " " + rs})
}

// Err returns the first contract violation recorded on this chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// Len returns the number of accumulated parts.
func (b *Builder) Len() int {
	return len(b.parts)
}

// Stringify concatenates the accumulated part texts in append order and
// consumes the builder: the sequence (and any sticky error) is cleared, so a
// second call returns an empty string. Returns the sticky error instead of
// text when the chain was mis-built.
func (b *Builder) Stringify() (string, error) {
	err := b.err
	parts := b.parts
	b.parts = nil
	b.err = nil

	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// append adds the part and validates the whole accumulated sequence.
// Uniqueness is checked before ordering; once the chain errs, further
// appends are ignored.
func (b *Builder) append(p Part) *Builder {
	if b.err != nil {
		return b
	}
	b.parts = append(b.parts, p)
	if err := b.validate(); err != nil {
		b.err = err
	}
	return b
}

// validate checks the full accumulated sequence, not just the latest part, so
// a violation surfaces exactly at the offending call.
func (b *Builder) validate() error {
	var counts [KindPseudoElement + 1]int
	for _, p := range b.parts {
		if p.Kind.unique() {
			counts[p.Kind]++
			if counts[p.Kind] > 1 {
				return ErrDuplicatePart
			}
		}
	}

	// Distinct rankable kinds in first-occurrence order must have strictly
	// increasing ranks. Combined parts are opaque and do not participate.
	var (
		seen [KindPseudoElement + 1]bool
		prev = Kind(-1)
	)
	for _, p := range b.parts {
		if !p.Kind.rankable() || seen[p.Kind] {
			continue
		}
		seen[p.Kind] = true
		if prev >= 0 && p.Kind <= prev {
			return ErrOutOfOrder
		}
		prev = p.Kind
	}
	return nil
}
