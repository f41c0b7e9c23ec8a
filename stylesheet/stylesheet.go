// Package stylesheet renders rules built from selector chains into CSS text.
package stylesheet

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"cssb/selector"
)

// Declarations maps property names to raw values. Values are written out
// verbatim, nothing is quoted or validated.
type Declarations map[string]string

// Rule pairs a selector with its declaration block.
type Rule struct {
	Selector     selector.Builder
	Declarations Declarations
}

// Stylesheet is an ordered list of rules. The zero value is empty and ready
// to use.
type Stylesheet struct {
	Rules []Rule
}

// Add appends a rule to the stylesheet.
func (s *Stylesheet) Add(sel selector.Builder, decls Declarations) {
	s.Rules = append(s.Rules, Rule{Selector: sel, Declarations: decls})
}

// WriteTo writes the stylesheet to w in source order, implementing
// io.WriterTo. Declarations within a rule are sorted by property name for
// deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, rule := range s.Rules {
		n, err := writeRule(w, rule)
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector.String())
	total += n
	if err != nil {
		return total, err
	}

	// Sort property names for deterministic output
	names := make([]string, 0, len(rule.Declarations))
	for name := range rule.Declarations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n, err = fmt.Fprintf(w, "  %s: %s;\n", name, rule.Declarations[name])
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
