package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single string or a sequence of strings in YAML.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler. Null and the empty string both
// decode to an empty list.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			*l = nil
			return nil
		}
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a path or a list of paths", value.Line)
	}
}

// MarshalYAML writes a one-element list back as a plain string.
func (l StringList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}
