// Package modeldump renders the resolved type model and operation index as JSON or YAML
// for the inspect command and the MCP tools.
package modeldump

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/typemodel"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", &oaserrors.ConfigError{Option: "format", Value: s, Message: "format must be json or yaml"}
}

// Model is the serializable view of an analysis.
type Model struct {
	Version    string             `json:"version" yaml:"version"`
	Title      string             `json:"title" yaml:"title"`
	APIVersion string             `json:"apiVersion" yaml:"apiVersion"`
	Servers    []string           `json:"servers,omitempty" yaml:"servers,omitempty"`
	Types      []*typemodel.Named `json:"types" yaml:"types"`
	Groups     []*analyzer.Group  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Issues     []issues.Issue     `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// FromResult builds the view of res.
func FromResult(res *analyzer.Result) *Model {
	m := &Model{
		Version:    res.Version,
		Title:      res.Info.Title,
		APIVersion: res.Info.Version,
		Types:      res.AllNamedTypes(),
		Groups:     res.OperationsByGroup(),
		Issues:     res.Issues(),
	}
	for _, s := range res.Servers {
		m.Servers = append(m.Servers, s.URL)
	}
	return m
}

// KeepTypes drops every declaration whose identifier is not in names. An empty names
// list keeps everything.
func (m *Model) KeepTypes(names ...string) {
	if len(names) == 0 {
		return
	}
	m.Types = slices.DeleteFunc(m.Types, func(n *typemodel.Named) bool {
		return !slices.Contains(names, n.Name)
	})
}

// Encode writes m to w in the given format.
func Encode(w io.Writer, m *Model, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("modeldump: encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("modeldump: encoding yaml: %w", err)
		}
		return enc.Close()
	}
	return &oaserrors.ConfigError{Option: "format", Value: string(f), Message: "format must be json or yaml"}
}
