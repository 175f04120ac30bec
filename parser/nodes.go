package parser

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// YAML core schema tags as set on decoded scalar nodes.
const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
)

// deref follows YAML alias nodes to their anchors.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// documentRoot unwraps a DocumentNode.
func documentRoot(n *yaml.Node) *yaml.Node {
	n = deref(n)
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return deref(n.Content[0])
	}
	return n
}

func isMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// eachPair calls fn for every key/value of a mapping in document order.
func eachPair(n *yaml.Node, fn func(key string, val *yaml.Node)) {
	if !isMapping(n) {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, deref(n.Content[i+1]))
	}
}

// child returns the value under key in a mapping, or nil.
func child(n *yaml.Node, key string) *yaml.Node {
	if !isMapping(n) {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

// items returns the elements of a sequence node.
func items(n *yaml.Node) []*yaml.Node {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = deref(c)
	}
	return out
}

func str(n *yaml.Node, key string) string {
	c := child(n, key)
	if c == nil || c.Kind != yaml.ScalarNode {
		return ""
	}
	return c.Value
}

func boolean(n *yaml.Node, key string) bool {
	c := child(n, key)
	if c == nil || c.Kind != yaml.ScalarNode {
		return false
	}
	b, err := strconv.ParseBool(c.Value)
	return err == nil && b
}

func stringList(n *yaml.Node) []string {
	var out []string
	for _, c := range items(n) {
		if c.Kind == yaml.ScalarNode {
			out = append(out, c.Value)
		}
	}
	return out
}

// scalar converts a node into a Go value: nil, bool, int64, float64, string, or for
// collections []any and map[string]any.
func scalar(n *yaml.Node) any {
	n = deref(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case tagNull:
			return nil
		case tagBool:
			if b, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
				return b
			}
		case tagInt:
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return i
			}
		case tagFloat:
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f
			}
		}
		return n.Value
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, scalar(c))
		}
		return out
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		eachPair(n, func(k string, v *yaml.Node) {
			out[k] = scalar(v)
		})
		return out
	}
	return nil
}
