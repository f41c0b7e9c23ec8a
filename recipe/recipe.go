// Package recipe compiles declarative YAML selector descriptions into
// selector chains and stylesheets.
package recipe

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"cssb/selector"
)

// Node describes one selector. Exactly one of the three forms must be
// used: a ref to an earlier named selector, a combine of two nodes, or
// inline fragment fields. Inline fields are applied in rank order, element
// first, so an inline node can never produce an out of order sequence.
type Node struct {
	Ref     string       `yaml:"ref,omitempty"`
	Combine *CombineNode `yaml:"combine,omitempty"`

	Element       string   `yaml:"element,omitempty"`
	ID            string   `yaml:"id,omitempty"`
	Classes       []string `yaml:"classes,omitempty"`
	ClassesFrom   []string `yaml:"classes_from,omitempty"`
	Attrs         []string `yaml:"attrs,omitempty"`
	PseudoClasses []string `yaml:"pseudo_classes,omitempty"`
	PseudoElement string   `yaml:"pseudo_element,omitempty"`
}

// CombineNode joins two nodes with a combinator token. An empty combinator
// means descendant.
type CombineNode struct {
	Left       Node   `yaml:"left"`
	Combinator string `yaml:"combinator,omitempty"`
	Right      Node   `yaml:"right"`
}

// Entry is a single named selector in a recipe document.
type Entry struct {
	Name         string            `yaml:"name,omitempty"`
	Declarations map[string]string `yaml:"declarations,omitempty"`
	Node         `yaml:",inline"`
}

// Document is a parsed recipe.
type Document struct {
	Version   int     `yaml:"version"`
	Selectors []Entry `yaml:"selectors"`
}

// recipeVersion is the only document version this build understands.
const recipeVersion = 1

// Load parses a recipe document. Unknown fields are rejected.
func Load(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode recipe: %w", err)
	}
	if doc.Version != recipeVersion {
		return nil, fmt.Errorf("unsupported recipe version %d, expected %d", doc.Version, recipeVersion)
	}
	return &doc, nil
}

func (n Node) isInline() bool {
	return n.Element != "" || n.ID != "" ||
		len(n.Classes) > 0 || len(n.ClassesFrom) > 0 ||
		len(n.Attrs) > 0 || len(n.PseudoClasses) > 0 ||
		n.PseudoElement != ""
}

// build resolves one node against previously compiled selectors.
func (n Node) build(byName map[string]selector.Builder) (selector.Builder, error) {
	forms := 0
	if n.Ref != "" {
		forms++
	}
	if n.Combine != nil {
		forms++
	}
	if n.isInline() {
		forms++
	}
	switch {
	case forms == 0:
		return selector.Builder{}, errors.New("empty selector node")
	case forms > 1:
		return selector.Builder{}, errors.New("selector node must use exactly one of ref, combine or inline fields")
	}

	switch {
	case n.Ref != "":
		b, ok := byName[n.Ref]
		if !ok {
			return selector.Builder{}, fmt.Errorf("reference to unknown selector '%s'", n.Ref)
		}
		return b, nil

	case n.Combine != nil:
		left, err := n.Combine.Left.build(byName)
		if err != nil {
			return selector.Builder{}, fmt.Errorf("combine left: %w", err)
		}
		right, err := n.Combine.Right.build(byName)
		if err != nil {
			return selector.Builder{}, fmt.Errorf("combine right: %w", err)
		}
		comb := n.Combine.Combinator
		if comb == "" {
			comb = selector.Descendant
		}
		return selector.Combine(left, comb, right), nil

	default:
		return n.buildInline()
	}
}

func (n Node) buildInline() (selector.Builder, error) {
	var (
		b   selector.Builder
		err error
	)
	if n.Element != "" {
		if b, err = b.Element(n.Element); err != nil {
			return selector.Builder{}, err
		}
	}
	if n.ID != "" {
		if b, err = b.ID(n.ID); err != nil {
			return selector.Builder{}, err
		}
	}
	for _, c := range n.Classes {
		if b, err = b.Class(c); err != nil {
			return selector.Builder{}, err
		}
	}
	for _, c := range n.ClassesFrom {
		if b, err = b.ClassFrom(c); err != nil {
			return selector.Builder{}, err
		}
	}
	for _, a := range n.Attrs {
		if b, err = b.Attr(a); err != nil {
			return selector.Builder{}, err
		}
	}
	for _, p := range n.PseudoClasses {
		if b, err = b.PseudoClass(p); err != nil {
			return selector.Builder{}, err
		}
	}
	if n.PseudoElement != "" {
		if b, err = b.PseudoElement(n.PseudoElement); err != nil {
			return selector.Builder{}, err
		}
	}
	return b, nil
}
