package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oastypes/typemodel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type resolveTypesInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI document to resolve"`
	Names       []string  `json:"names,omitempty"        jsonschema:"Return only these declarations (Go identifiers, e.g. Pet)"`
	LimitGroups []string  `json:"limit_groups,omitempty" jsonschema:"Keep only types reachable from operations with these tags"`
	Offset      int       `json:"offset,omitempty"       jsonschema:"Skip the first N declarations (for pagination)"`
	Limit       int       `json:"limit,omitempty"        jsonschema:"Maximum number of declarations to return (default 100)"`
}

type fieldInfo struct {
	Name        string `json:"name"`
	WireName    string `json:"wire_name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	Description string `json:"description,omitempty"`
}

type enumValueInfo struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type typeInfo struct {
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Pointer     string          `json:"pointer"`
	Description string          `json:"description,omitempty"`
	Deprecated  bool            `json:"deprecated,omitempty"`
	Fields      []fieldInfo     `json:"fields,omitempty"`
	Base        string          `json:"base,omitempty"`
	Values      []enumValueInfo `json:"values,omitempty"`
	Target      string          `json:"target,omitempty"`
}

type resolveTypesOutput struct {
	Version      string      `json:"version"`
	Title        string      `json:"title"`
	TypeCount    int         `json:"type_count"`
	Matched      int         `json:"matched"`
	Returned     int         `json:"returned"`
	Types        []typeInfo  `json:"types,omitempty"`
	NotFound     []string    `json:"not_found,omitempty"`
	WarningCount int         `json:"warning_count"`
	ErrorCount   int         `json:"error_count"`
	Issues       []issueInfo `json:"issues,omitempty"`
}

func handleResolveTypes(ctx context.Context, _ *mcp.CallToolRequest, input resolveTypesInput) (*mcp.CallToolResult, resolveTypesOutput, error) {
	res, err := input.Spec.analyze(ctx, trimList(input.LimitGroups))
	if err != nil {
		return errResult(err), resolveTypesOutput{}, nil
	}

	all := res.AllNamedTypes()
	matched := all
	var notFound []string
	if len(input.Names) > 0 {
		matched = make([]*typemodel.Named, 0, len(input.Names))
		for _, name := range trimList(input.Names) {
			if n := res.Declaration(name); n != nil {
				matched = append(matched, n)
			} else {
				notFound = append(notFound, name)
			}
		}
	}

	page := paginate(matched, input.Offset, input.Limit)
	output := resolveTypesOutput{
		Version:   res.Version,
		Title:     res.Info.Title,
		TypeCount: len(all),
		Matched:   len(matched),
		Returned:  len(page),
		Types:     makeSlice[typeInfo](len(page)),
		NotFound:  notFound,
	}
	for _, n := range page {
		output.Types = append(output.Types, describeType(n))
	}
	output.Issues, output.WarningCount, output.ErrorCount = issueSummary(res.Issues())
	return nil, output, nil
}

// describeType flattens a declaration for tool output. Types are rendered in Go syntax.
func describeType(n *typemodel.Named) typeInfo {
	info := typeInfo{
		Name:        n.Name,
		Kind:        n.Kind.String(),
		Pointer:     n.Pointer,
		Description: n.Description,
		Deprecated:  n.Deprecated,
		Fields:      makeSlice[fieldInfo](len(n.Fields)),
		Values:      makeSlice[enumValueInfo](len(n.Values)),
	}
	for _, f := range n.Fields {
		info.Fields = append(info.Fields, fieldInfo{
			Name:        f.Name,
			WireName:    f.WireName,
			Type:        f.Type.String(),
			Required:    f.Required,
			Nullable:    f.Nullable,
			Deprecated:  f.Deprecated,
			Description: f.Description,
		})
	}
	for _, v := range n.Values {
		info.Values = append(info.Values, enumValueInfo{Name: v.Name, Value: fmt.Sprint(v.Value)})
	}
	if n.Base != nil {
		info.Base = n.Base.String()
	}
	if n.Target != nil {
		info.Target = n.Target.String()
	}
	return info
}
