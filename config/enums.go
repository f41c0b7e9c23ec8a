package config

import (
	yaml "gopkg.in/yaml.v3"
)

// Specification of requested output layout.
// ENUM(list, css, json)
type OutputFmt int

// Specification of rendered rule ordering.
// ENUM(source, natural)
type SortOrder int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtList:
		return ".txt"
	case OutputFmtCss:
		return ".css"
	case OutputFmtJson:
		return ".json"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// yaml.v3 does not look at encoding.TextUnmarshaler, enum fields need yaml
// methods of their own to round-trip as names rather than numbers.

func (o *OutputFmt) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	v, err := ParseOutputFmt(name)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o OutputFmt) MarshalYAML() (any, error) {
	return o.String(), nil
}

func (s *SortOrder) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	v, err := ParseSortOrder(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s SortOrder) MarshalYAML() (any, error) {
	return s.String(), nil
}
