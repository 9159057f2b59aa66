package config

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"

	appErrors "dainty/internal/errors"
	"dainty/internal/ordered"
)

// overrideSections holds the map-valued parts of the configuration. viper
// folds map keys to lower case, but seed names, category names and keys are
// case-sensitive and their order decides output order, so these sections are
// decoded straight from the yaml node tree. Later files win per key; the
// first appearance of a key fixes its position.
type overrideSections struct {
	seeds      *ordered.Map[string, seedOverride]
	categories *ordered.Map[string, *ordered.Map[string, any]]
	search     *ordered.Map[string, any]
}

type seedOverride struct {
	list   []string
	single string
	isList bool
}

func newOverrideSections() *overrideSections {
	return &overrideSections{
		seeds:      ordered.New[string, seedOverride](0),
		categories: ordered.New[string, *ordered.Map[string, any]](0),
		search:     ordered.New[string, any](0),
	}
}

func (s *overrideSections) merge(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: top level must be a mapping", root.Line)
	}

	if err := s.mergeSeeds(child(child(root, "colors"), "overrides")); err != nil {
		return err
	}
	replacements := child(child(root, "replacements"), "overrides")
	if err := s.mergeCategories(child(replacements, "categories")); err != nil {
		return err
	}
	return s.mergeSearch(child(replacements, "searchReplace"))
}

func (s *overrideSections) mergeSeeds(node *yaml.Node) error {
	if isEmpty(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return sectionError("colors.overrides", node, "must be a mapping of seed names to colors")
	}
	for key, value := range pairs(node) {
		path := "colors.overrides." + key
		switch value.Kind {
		case yaml.SequenceNode:
			var list []string
			if err := value.Decode(&list); err != nil {
				return sectionError(path, value, "must be a list of color hex values")
			}
			s.seeds.Set(key, seedOverride{list: list, isList: true})
		case yaml.ScalarNode:
			if isNull(value) {
				continue
			}
			s.seeds.Set(key, seedOverride{single: value.Value})
		default:
			return sectionError(path, value, "must be a color hex value or a list of them")
		}
	}
	return nil
}

func (s *overrideSections) mergeCategories(node *yaml.Node) error {
	if isEmpty(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return sectionError("replacements.overrides.categories", node, "must be a mapping of categories")
	}
	for category, keysNode := range pairs(node) {
		path := fmt.Sprintf("replacements.overrides.categories[%q]", category)
		if isEmpty(keysNode) {
			continue
		}
		if keysNode.Kind != yaml.MappingNode {
			return sectionError(path, keysNode, "must be a mapping of keys to [[dark], [light]] color pairs")
		}
		keys, ok := s.categories.Get(category)
		if !ok {
			keys = ordered.New[string, any](0)
			s.categories.Set(category, keys)
		}
		for key, value := range pairs(keysNode) {
			var raw any
			if err := value.Decode(&raw); err != nil {
				return sectionError(fmt.Sprintf("%s[%q]", path, key), value, err.Error())
			}
			keys.Set(key, raw)
		}
	}
	return nil
}

func (s *overrideSections) mergeSearch(node *yaml.Node) error {
	if isEmpty(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return sectionError("replacements.overrides.searchReplace", node, "must be a mapping of colors to [dark, light] pairs")
	}
	for find, value := range pairs(node) {
		var raw any
		if err := value.Decode(&raw); err != nil {
			return sectionError(fmt.Sprintf("replacements.overrides.searchReplace[%q]", find), value, err.Error())
		}
		s.search.Set(find, raw)
	}
	return nil
}

func sectionError(path string, node *yaml.Node, msg string) error {
	return appErrors.At(appErrors.CodeConfigurationError, path,
		fmt.Sprintf("line %d: %s %s", node.Line, path, msg), nil)
}

// pairs yields the key/value nodes of a mapping in document order.
func pairs(node *yaml.Node) func(yield func(string, *yaml.Node) bool) {
	return func(yield func(string, *yaml.Node) bool) {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if !yield(node.Content[i].Value, deref(node.Content[i+1])) {
				return
			}
		}
	}
}

func child(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for k, v := range pairs(node) {
		if k == key {
			return v
		}
	}
	return nil
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func isEmpty(node *yaml.Node) bool {
	return node == nil || isNull(node)
}

// setScalar sets the string at path in a yaml document, creating mappings
// as needed and leaving everything else untouched.
func setScalar(data []byte, path []string, value string) ([]byte, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	if len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	node := deref(doc.Content[0])
	for i, key := range path {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: %s is not a mapping", node.Line, key)
		}
		next := child(node, key)
		last := i == len(path)-1
		switch {
		case next == nil && last:
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
		case next == nil:
			next = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, next)
		case last:
			*next = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
		}
		node = next
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
