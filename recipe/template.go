package recipe

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// lineValues is a struct that holds variables we make available for
// template expansion
type lineValues struct {
	Index        int
	Name         string
	CSS          string
	Declarations map[string]string
}

// ExpandTemplate expands a line template for one compiled selector. The
// sprig function set is available and the data is Index, Name, CSS and
// Declarations.
func ExpandTemplate(field string, c Compiled, index int) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New("line").Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse line template: %w", err)
	}

	values := &lineValues{
		Index:        index,
		Name:         c.Name,
		CSS:          c.CSS,
		Declarations: c.Declarations,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
