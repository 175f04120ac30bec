package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listOperationsInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI document to index"`
	Group       string    `json:"group,omitempty"        jsonschema:"Return only the operations of this group (tag name or Go identifier)"`
	LimitGroups []string  `json:"limit_groups,omitempty" jsonschema:"Index only operations with these tags"`
	Offset      int       `json:"offset,omitempty"       jsonschema:"Skip the first N operations (for pagination)"`
	Limit       int       `json:"limit,omitempty"        jsonschema:"Maximum number of operations to return (default 100)"`
}

type parameterInfo struct {
	Name     string `json:"name"`
	WireName string `json:"wire_name"`
	In       string `json:"in,omitempty"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
	Binary   bool   `json:"binary,omitempty"`
}

type bodyInfo struct {
	MediaType string          `json:"media_type"`
	Encoding  string          `json:"encoding"`
	Type      string          `json:"type,omitempty"`
	Required  bool            `json:"required,omitempty"`
	Fields    []parameterInfo `json:"fields,omitempty"`
}

type responseInfo struct {
	StatusCode string `json:"status_code"`
	MediaType  string `json:"media_type,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Type       string `json:"type,omitempty"`
}

type operationInfo struct {
	Group       string          `json:"group"`
	Name        string          `json:"name"`
	OperationID string          `json:"operation_id,omitempty"`
	Method      string          `json:"method"`
	Path        string          `json:"path"`
	Summary     string          `json:"summary,omitempty"`
	Deprecated  bool            `json:"deprecated,omitempty"`
	Security    []string        `json:"security,omitempty"`
	Parameters  []parameterInfo `json:"parameters,omitempty"`
	Body        *bodyInfo       `json:"body,omitempty"`
	Response    *responseInfo   `json:"response,omitempty"`
}

type groupInfo struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Operations int    `json:"operations"`
}

type listOperationsOutput struct {
	Groups         []groupInfo     `json:"groups"`
	OperationCount int             `json:"operation_count"`
	Returned       int             `json:"returned"`
	Operations     []operationInfo `json:"operations,omitempty"`
	WarningCount   int             `json:"warning_count"`
	ErrorCount     int             `json:"error_count"`
	Issues         []issueInfo     `json:"issues,omitempty"`
}

func handleListOperations(ctx context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	res, err := input.Spec.analyze(ctx, trimList(input.LimitGroups))
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	groups := res.OperationsByGroup()
	if input.Group != "" {
		var selected *analyzer.Group
		for _, g := range groups {
			if g.Name == input.Group || g.Identifier == input.Group {
				selected = g
				break
			}
		}
		if selected == nil {
			return errResult(fmt.Errorf("no group named %q", input.Group)), listOperationsOutput{}, nil
		}
		groups = []*analyzer.Group{selected}
	}

	var ops []operationInfo
	output := listOperationsOutput{Groups: make([]groupInfo, 0, len(groups))}
	for _, g := range groups {
		output.Groups = append(output.Groups, groupInfo{Name: g.Name, Identifier: g.Identifier, Operations: len(g.Operations)})
		for _, op := range g.Operations {
			ops = append(ops, describeOperation(g, op))
		}
	}
	output.OperationCount = len(ops)
	output.Operations = paginate(ops, input.Offset, input.Limit)
	output.Returned = len(output.Operations)
	output.Issues, output.WarningCount, output.ErrorCount = issueSummary(res.Issues())
	return nil, output, nil
}

func describeOperation(g *analyzer.Group, op *analyzer.Operation) operationInfo {
	info := operationInfo{
		Group:       g.Name,
		Name:        op.Name,
		OperationID: op.OperationID,
		Method:      op.Method,
		Path:        op.Path,
		Summary:     op.Summary,
		Deprecated:  op.Deprecated,
		Security:    op.Security,
		Parameters:  makeSlice[parameterInfo](len(op.Parameters)),
	}
	for _, p := range op.Parameters {
		info.Parameters = append(info.Parameters, parameterInfo{
			Name:     p.Name,
			WireName: p.WireName,
			In:       string(p.In),
			Type:     p.Type.String(),
			Required: p.Required,
		})
	}

	if b := op.Body; b != nil {
		body := &bodyInfo{
			MediaType: b.MediaType,
			Encoding:  b.Encoding.String(),
			Required:  b.Required,
			Fields:    makeSlice[parameterInfo](len(b.Fields)),
		}
		if !b.Encoding.IsForm() {
			body.Type = b.Type.String()
		}
		for _, f := range b.Fields {
			body.Fields = append(body.Fields, parameterInfo{
				Name:     f.Name,
				WireName: f.WireName,
				Type:     f.Type.String(),
				Required: f.Required,
				Binary:   f.Binary,
			})
		}
		info.Body = body
	}

	if r := op.Response; r != nil {
		resp := &responseInfo{StatusCode: r.StatusCode}
		if r.HasBody() {
			resp.MediaType = r.MediaType
			resp.Encoding = r.Encoding.String()
			resp.Type = r.Type.String()
		}
		info.Response = resp
	}
	return info
}
