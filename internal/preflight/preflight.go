// Package preflight checks a document for OpenAPI conformance before type resolution.
// The resolver tolerates many defects on its own; preflight is the opt-in strict gate
// behind the --validate flag and the validate command.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

// Checker validates documents with kin-openapi.
type Checker struct {
	// AllowExternalRefs lets the loader follow file and URL references.
	AllowExternalRefs bool
	// ValidateExamples also checks example values against their schemas.
	ValidateExamples bool
	// Logger receives debug output. If nil, logging is disabled.
	Logger parser.Logger
}

// Report summarizes a successful check.
type Report struct {
	// Version is the declared openapi version
	Version string
	// Title is info.title
	Title string
	// Operations counts path operations
	Operations int
	// Schemas counts component schemas
	Schemas int
}

func (c *Checker) log() parser.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return parser.NopLogger{}
}

func (c *Checker) loader(ctx context.Context) *openapi3.Loader {
	return &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: c.AllowExternalRefs,
	}
}

// CheckSource validates a file path or http(s) URL.
func (c *Checker) CheckSource(ctx context.Context, source string) (*Report, error) {
	loader := c.loader(ctx)
	var (
		doc *openapi3.T
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, perr := url.Parse(source)
		if perr != nil {
			return nil, &oaserrors.ConfigError{Option: "source", Value: source, Message: "invalid URL", Cause: perr}
		}
		doc, err = loader.LoadFromURI(u)
	} else {
		doc, err = loader.LoadFromFile(source)
	}
	if err != nil {
		return nil, loadError(source, err)
	}
	return c.validate(ctx, source, doc)
}

// CheckData validates an in-memory document. Relative references cannot be followed.
func (c *Checker) CheckData(ctx context.Context, data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, &oaserrors.ParseError{Message: "document is empty"}
	}
	doc, err := c.loader(ctx).LoadFromData(data)
	if err != nil {
		return nil, loadError("", err)
	}
	return c.validate(ctx, "", doc)
}

func (c *Checker) validate(ctx context.Context, source string, doc *openapi3.T) (*Report, error) {
	var opts []openapi3.ValidationOption
	if !c.ValidateExamples {
		opts = append(opts, openapi3.DisableExamplesValidation())
	}
	if err := doc.Validate(ctx, opts...); err != nil {
		return nil, &oaserrors.ValidationError{Path: source, Message: "document does not conform to OpenAPI", Cause: err}
	}

	report := &Report{Version: doc.OpenAPI}
	if doc.Info != nil {
		report.Title = doc.Info.Title
	}
	if doc.Paths != nil {
		for _, item := range doc.Paths.Map() {
			report.Operations += len(item.Operations())
		}
	}
	if doc.Components != nil {
		report.Schemas = len(doc.Components.Schemas)
	}

	c.log().Debug("preflight passed",
		"source", source,
		"version", report.Version,
		"operations", report.Operations,
		"schemas", report.Schemas)
	return report, nil
}

func loadError(source string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &oaserrors.ParseError{Path: source, Message: fmt.Sprintf("loading document: %v", err), Cause: err}
}
