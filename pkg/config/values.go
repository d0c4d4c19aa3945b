package config

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/model"
)

// ParseValues decodes an answers document into a snapshot. The document is a
// YAML (or JSON) mapping of field identifiers to either a scalar or a list of
// scalars. Radio groups and checkbox sets always become selections; other
// fields take their scalar as text.
func ParseValues(data []byte) (model.Snapshot, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Snapshot{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse values: %w", err)
	}
	if len(doc.Content) == 0 {
		return model.Snapshot{}, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: values: expected a mapping of field ids")
	}

	controls := make(map[model.FieldID]model.Control)
	for _, field := range model.Catalog(model.DefaultVariant) {
		controls[field.ID] = field.Control
	}

	snapshot := make(model.Snapshot, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, node := root.Content[i], root.Content[i+1]
		id, err := model.ParseFieldID(key.Value)
		if err != nil {
			return nil, fmt.Errorf("config: values: line %d: %w", key.Line, err)
		}
		if _, dup := snapshot[id]; dup {
			return nil, fmt.Errorf("config: values: line %d: field %s given twice", key.Line, id)
		}
		items, err := scalars(node)
		if err != nil {
			return nil, fmt.Errorf("config: values: field %s: %w", id, err)
		}
		switch controls[id] {
		case model.ControlRadio, model.ControlCheckbox:
			snapshot[id] = model.Choice(nonBlank(items)...)
		default:
			if len(items) > 1 {
				return nil, fmt.Errorf("config: values: field %s expects a single value", id)
			}
			text := ""
			if len(items) == 1 {
				text = items[0]
			}
			snapshot[id] = model.Text(text)
		}
	}
	return snapshot, nil
}

// ReadValues reads and parses an answers document from fsys.
func ReadValues(fsys fs.FS, name string) (model.Snapshot, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read values %s: %w", name, err)
	}
	return ParseValues(data)
}

// scalars returns the source text of a scalar or a sequence of scalars. The
// node text is used as written so zip codes and SSNs keep leading zeros and
// are never reinterpreted as numbers or dates.
func scalars(node *yaml.Node) ([]string, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("nested values are not supported")
			}
			if item.Tag == "!!null" {
				continue
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("nested values are not supported")
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func nonBlank(values []string) []string {
	var out []string
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
