package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oastypes/generator"
	"github.com/erraggy/oastypes/internal/pathutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI document to generate code from"`
	PackageName    string    `json:"package_name,omitempty"    jsonschema:"Go package name for generated code (default: OASTYPES_DEFAULT_PACKAGE or api)"`
	LimitGroups    []string  `json:"limit_groups,omitempty"    jsonschema:"Generate only these groups (tag names) and the types they use"`
	DefinedTypes   bool      `json:"defined_types,omitempty"   jsonschema:"Emit named aliases as defined types (type X T) instead of aliases"`
	Strict         *bool     `json:"strict,omitempty"          jsonschema:"Fail when resolution or generation reports warnings"`
	OutputDir      string    `json:"output_dir,omitempty"      jsonschema:"Directory to write generated files to"`
	IncludeContent bool      `json:"include_content,omitempty" jsonschema:"Return the generated source inline"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	OutputDir           string              `json:"output_dir,omitempty"`
	PackageName         string              `json:"package_name"`
	FileCount           int                 `json:"file_count"`
	Files               []generatedFileInfo `json:"files"`
	GeneratedTypes      int                 `json:"generated_types"`
	GeneratedOperations int                 `json:"generated_operations"`
	WarningCount        int                 `json:"warning_count"`
	ErrorCount          int                 `json:"error_count"`
	Issues              []issueInfo         `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.OutputDir == "" && !input.IncludeContent {
		return errResult(fmt.Errorf("set output_dir, include_content, or both")), generateOutput{}, nil
	}

	outputDir := input.OutputDir
	if outputDir != "" {
		var err error
		if outputDir, err = pathutil.SanitizeOutputPath(outputDir); err != nil {
			return errResult(err), generateOutput{}, nil
		}
	}

	parseResult, err := input.Spec.parse(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	packageName := input.PackageName
	if packageName == "" {
		packageName = cfg.DefaultPackage
	}
	strict := cfg.GenerateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}

	result, err := generator.GenerateWithOptions(
		generator.WithParsed(parseResult),
		generator.WithPackageName(packageName),
		generator.WithLimitGroups(trimList(input.LimitGroups)...),
		generator.WithDefinedTypes(input.DefinedTypes),
		generator.WithStrictMode(strict),
		generator.WithLogger(serverLogger()),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if outputDir != "" {
		if err := result.WriteFiles(outputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Success:             result.Success,
		OutputDir:           outputDir,
		PackageName:         result.PackageName,
		FileCount:           len(result.Files),
		GeneratedTypes:      result.GeneratedTypes,
		GeneratedOperations: result.GeneratedOperations,
		Files:               makeSlice[generatedFileInfo](len(result.Files)),
	}
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if input.IncludeContent {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}
	output.Issues, output.WarningCount, output.ErrorCount = issueSummary(result.Issues)
	return nil, output, nil
}
