// Package selector builds CSS selector strings from typed fragments.
//
// A Builder is an immutable value: every operation returns a new Builder and
// leaves the receiver untouched, so a partially built selector can be kept
// and reused as a prefix for several different chains. Fragments of a simple
// selector are validated to appear in non-decreasing rank order (element, id,
// class, attribute, pseudo-class, pseudo-element) and element, id and
// pseudo-element may occur at most once. Fragment values themselves are taken
// verbatim - the package renders, it does not parse.
package selector

import (
	"errors"
	"fmt"
)

// Kind identifies a fragment type. Values are ordered by rank: a valid
// simple selector lists its fragments in non-decreasing Kind order.
type Kind int

const (
	KindElement Kind = iota
	KindID
	KindClass
	KindAttribute
	KindPseudoClass
	KindPseudoElement
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindID:
		return "id"
	case KindClass:
		return "class"
	case KindAttribute:
		return "attribute"
	case KindPseudoClass:
		return "pseudo-class"
	case KindPseudoElement:
		return "pseudo-element"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// singleton reports whether fragments of this kind may occur at most once
// inside a selector.
func (k Kind) singleton() bool {
	return k == KindElement || k == KindID || k == KindPseudoElement
}

// render formats a raw value as a fragment of the given kind.
func render(k Kind, v string) string {
	switch k {
	case KindID:
		return "#" + v
	case KindClass:
		return "." + v
	case KindAttribute:
		return "[" + v + "]"
	case KindPseudoClass:
		return ":" + v
	case KindPseudoElement:
		return "::" + v
	default:
		return v
	}
}

// Fragment is a single typed, pre-rendered piece of a selector: an id "main"
// is stored rendered as "#main".
type Fragment struct {
	kind Kind
	text string
}

// Kind returns the fragment kind.
func (f Fragment) Kind() Kind { return f.kind }

// Text returns the rendered fragment text.
func (f Fragment) Text() string { return f.text }

// Construction errors. Failures are returned wrapped with the offending
// kinds for context - match with errors.Is.
var (
	// ErrDuplicateFragment is returned when a second element, id or
	// pseudo-element fragment is added to the same selector.
	ErrDuplicateFragment = errors.New("element, id and pseudo-element should not occur more than one time inside the selector")

	// ErrOutOfOrder is returned when an added fragment would break the rank
	// order of the sequence.
	ErrOutOfOrder = errors.New("selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element")
)
