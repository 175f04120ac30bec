package mcpserver

import (
	"context"
	"errors"

	"github.com/erraggy/oastypes/internal/preflight"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Spec             specInput `json:"spec"                        jsonschema:"The OpenAPI document to check"`
	ValidateExamples bool      `json:"validate_examples,omitempty" jsonschema:"Also check example values against their schemas"`
}

type validateOutput struct {
	Valid      bool   `json:"valid"`
	Version    string `json:"version,omitempty"`
	Title      string `json:"title,omitempty"`
	Operations int    `json:"operations"`
	Schemas    int    `json:"schemas"`
	Problem    string `json:"problem,omitempty"`
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	data, err := input.Spec.fetch(ctx)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	checker := &preflight.Checker{
		ValidateExamples: input.ValidateExamples,
		Logger:           serverLogger(),
	}
	report, err := checker.CheckData(ctx, data)
	if err != nil {
		// A non-conforming document is a result, not a tool failure.
		if errors.Is(err, oaserrors.ErrValidation) || errors.Is(err, oaserrors.ErrParse) {
			return nil, validateOutput{Problem: sanitizeError(err)}, nil
		}
		return errResult(err), validateOutput{}, nil
	}

	return nil, validateOutput{
		Valid:      true,
		Version:    report.Version,
		Title:      report.Title,
		Operations: report.Operations,
		Schemas:    report.Schemas,
	}, nil
}
