package recipe

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssb/selector"
	"cssb/stylesheet"
)

// Compiled is one successfully built selector.
type Compiled struct {
	Name         string
	Builder      selector.Builder
	CSS          string
	Declarations stylesheet.Declarations
}

// Compile builds every entry in document order. Entries without a name get
// a generated one so later entries can still be referenced by position in
// logs. Failures do not stop compilation: errors are accumulated and
// returned together with the entries that did compile.
func (d *Document) Compile(log *zap.Logger) ([]Compiled, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("recipe")

	var (
		compiled []Compiled
		errs     error
	)
	byName := make(map[string]selector.Builder, len(d.Selectors))

	for i, entry := range d.Selectors {
		name := entry.Name
		if name == "" {
			id, err := uuid.NewV7()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("unable to generate name for selector %d: %w", i, err))
				continue
			}
			name = id.String()
			log.Warn("Selector entry has no name, generating one", zap.Int("index", i), zap.Stringer("name", id))
		}
		if _, dup := byName[name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate selector name '%s'", name))
			continue
		}

		b, err := entry.Node.build(byName)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("selector '%s': %w", name, err))
			continue
		}
		byName[name] = b

		css := b.String()
		log.Debug("Compiled selector", zap.String("name", name), zap.String("css", css))
		compiled = append(compiled, Compiled{
			Name:         name,
			Builder:      b,
			CSS:          css,
			Declarations: stylesheet.Declarations(entry.Declarations),
		})
	}
	return compiled, errs
}

// Stylesheet collects entries carrying declarations into rules, preserving
// the given order. Entries without declarations are selector definitions
// only and produce no rule.
func Stylesheet(compiled []Compiled) *stylesheet.Stylesheet {
	var sheet stylesheet.Stylesheet
	for _, c := range compiled {
		if len(c.Declarations) == 0 {
			continue
		}
		sheet.Add(c.Builder, c.Declarations)
	}
	return &sheet
}

// SortNatural orders compiled selectors by name with numeric runs compared
// by value, so "item2" sorts before "item10".
func SortNatural(compiled []Compiled) {
	sort.Slice(compiled, func(i, j int) bool {
		return natural.Less(compiled[i].Name, compiled[j].Name)
	})
}
