package selector

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Combinator tokens accepted by Combine. Any other non-empty token is
// written as is.
const (
	// Descendant is the whitespace combinator. NOTE: Combine pads every
	// token with single spaces, so the descendant combinator renders as
	// three spaces between the two selectors.
	Descendant = " "
	Child      = ">"
	Adjacent   = "+"
	Sibling    = "~"
)

// Builder is an immutable ordered sequence of selector fragments. The zero
// value is the empty selector and serves as the shared starting point of
// every chain:
//
//	b, err := selector.ID("main").Class("container")
//	if err != nil { ... }
//	fmt.Println(b) // #main.container
//
// Operations never modify the receiver - each returns a fresh Builder
// owning its own fragment sequence, so any intermediate value remains valid
// and usable even after a later operation fails.
type Builder struct {
	frags []Fragment
}

// Len returns the number of accumulated fragments.
func (b Builder) Len() int { return len(b.frags) }

// Fragments returns a copy of the fragment sequence.
func (b Builder) Fragments() []Fragment {
	if len(b.frags) == 0 {
		return nil
	}
	out := make([]Fragment, len(b.frags))
	copy(out, b.frags)
	return out
}

// String renders the selector by concatenating fragment texts in sequence
// order. Pure and idempotent, empty for the zero Builder.
func (b Builder) String() string {
	var sb strings.Builder
	for _, f := range b.frags {
		sb.WriteString(f.text)
	}
	return sb.String()
}

// Element appends an element fragment rendered as v.
func (b Builder) Element(v string) (Builder, error) {
	return b.append(KindElement, render(KindElement, v))
}

// ID appends an id fragment rendered as "#v".
func (b Builder) ID(v string) (Builder, error) {
	return b.append(KindID, render(KindID, v))
}

// Class appends a class fragment rendered as ".v". Classes may repeat.
func (b Builder) Class(v string) (Builder, error) {
	return b.append(KindClass, render(KindClass, v))
}

// Attr appends an attribute fragment rendered as "[v]". The value is not
// inspected - any attribute expression is written verbatim.
func (b Builder) Attr(v string) (Builder, error) {
	return b.append(KindAttribute, render(KindAttribute, v))
}

// PseudoClass appends a pseudo-class fragment rendered as ":v".
func (b Builder) PseudoClass(v string) (Builder, error) {
	return b.append(KindPseudoClass, render(KindPseudoClass, v))
}

// PseudoElement appends a pseudo-element fragment rendered as "::v".
func (b Builder) PseudoElement(v string) (Builder, error) {
	return b.append(KindPseudoElement, render(KindPseudoElement, v))
}

// ClassFrom appends a class fragment derived from free form text: the text
// is slugged into a safe identifier, "Chapter One!" becomes ".chapter-one".
func (b Builder) ClassFrom(text string) (Builder, error) {
	return b.Class(slug.Make(text))
}

// IDFrom appends an id fragment derived from free form text the same way
// ClassFrom does.
func (b Builder) IDFrom(text string) (Builder, error) {
	return b.ID(slug.Make(text))
}

// append validates and adds one fragment, returning the grown copy. The
// receiver sequence is never touched: on error the caller keeps the prior
// builder, on success both values can be used independently.
func (b Builder) append(k Kind, text string) (Builder, error) {
	// Singleton kinds are rejected before anything is constructed, so the
	// duplicate error wins even when ordering would be violated too. The
	// check covers the whole history, sequences glued by Combine included.
	if k.singleton() {
		for _, f := range b.frags {
			if f.kind == k {
				return Builder{}, fmt.Errorf("second %s fragment: %w", k, ErrDuplicateFragment)
			}
		}
	}

	frags := make([]Fragment, len(b.frags), len(b.frags)+1)
	copy(frags, b.frags)
	frags = append(frags, Fragment{kind: k, text: text})

	// Ranks must not decrease anywhere in the sequence. A builder produced
	// by Combine may already hold an out of order run, in which case any
	// further append is rejected here.
	for i := 1; i < len(frags); i++ {
		if frags[i-1].kind > frags[i].kind {
			return Builder{}, fmt.Errorf("%s after %s: %w", frags[i].kind, frags[i-1].kind, ErrOutOfOrder)
		}
	}
	return Builder{frags: frags}, nil
}

// Combine joins two selectors with a combinator token producing
// "left combinator right". The joint is recorded as an element kind
// fragment and the combined sequence is deliberately not checked against
// rank order: each side is a complete selector on its own and their
// concatenation does not have to be ordered. Appending more fragments to
// the result re-validates the whole sequence and may then fail with
// ErrOutOfOrder.
func Combine(left Builder, combinator string, right Builder) Builder {
	frags := make([]Fragment, 0, len(left.frags)+len(right.frags)+1)
	frags = append(frags, left.frags...)
	frags = append(frags, Fragment{kind: KindElement, text: " " + combinator + " "})
	frags = append(frags, right.frags...)
	return Builder{frags: frags}
}

// Starters below open a chain from the empty selector. A first fragment can
// break neither ordering nor uniqueness, so they return the Builder alone.

// Element starts a selector with an element fragment.
func Element(v string) Builder { return start(KindElement, v) }

// ID starts a selector with an id fragment.
func ID(v string) Builder { return start(KindID, v) }

// Class starts a selector with a class fragment.
func Class(v string) Builder { return start(KindClass, v) }

// Attr starts a selector with an attribute fragment.
func Attr(v string) Builder { return start(KindAttribute, v) }

// PseudoClass starts a selector with a pseudo-class fragment.
func PseudoClass(v string) Builder { return start(KindPseudoClass, v) }

// PseudoElement starts a selector with a pseudo-element fragment.
func PseudoElement(v string) Builder { return start(KindPseudoElement, v) }

func start(k Kind, v string) Builder {
	return Builder{frags: []Fragment{{kind: k, text: render(k, v)}}}
}
