package generator

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"go/importer"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/testutil"
	"github.com/erraggy/oastypes/oaserrors"
)

var fixedInfo = GenerationInfo{
	Timestamp:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	ToolVersion: "v1.2.3",
}

const modelDoc = `openapi: 3.0.3
info: {title: Model, version: "2"}
paths:
  /upload:
    post:
      operationId: upload
      requestBody:
        required: true
        content:
          multipart/form-data:
            schema:
              type: object
              required: [file]
              properties:
                file: {type: string, format: binary}
                note: {type: string}
      responses:
        "204": {description: done}
  /raw:
    put:
      operationId: putRaw
      deprecated: true
      requestBody:
        content:
          application/octet-stream:
            schema: {type: string, format: binary}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Tree'}
components:
  schemas:
    Node:
      type: object
      required: [value, next]
      properties:
        value: {type: string}
        next: {$ref: '#/components/schemas/Node'}
    A:
      type: object
      required: [b]
      properties:
        b: {$ref: '#/components/schemas/B'}
    B:
      type: object
      required: [a]
      properties:
        a: {$ref: '#/components/schemas/AliasOfA'}
    AliasOfA:
      $ref: '#/components/schemas/A'
    Tree:
      type: array
      items: {$ref: '#/components/schemas/Tree'}
    Labels:
      type: object
      additionalProperties: {type: string}
    Timestamp:
      type: string
      format: date-time
    Status:
      type: string
      enum: [ok]
    StatusOk:
      type: string
`

func generate(t *testing.T, src string, configure ...func(*Generator)) *GenerateResult {
	t.Helper()
	g := New()
	g.Info = fixedInfo
	for _, fn := range configure {
		fn(g)
	}
	result, err := g.GenerateParsed(testutil.Parse(t, src))
	require.NoError(t, err)
	return result
}

// squash collapses whitespace runs so assertions do not depend on gofmt alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func fileText(t *testing.T, result *GenerateResult, name string) string {
	t.Helper()
	f := result.GetFile(name)
	require.NotNil(t, f, "missing %s", name)
	return squash(string(f.Content))
}

// typeCheck parses and type-checks the generated files as one package.
func typeCheck(t *testing.T, result *GenerateResult) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for _, f := range result.Files {
		file, err := goparser.ParseFile(fset, f.Name, f.Content, goparser.ParseComments)
		require.NoError(t, err, "%s:\n%s", f.Name, f.Content)
		files = append(files, file)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	_, err := conf.Check(result.PackageName, fset, files, nil)
	require.NoError(t, err)
}

func TestGenerate_Petstore(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML)

	assert.True(t, result.Success)
	assert.Equal(t, "3.0.3", result.SourceVersion)
	assert.Equal(t, "api", result.PackageName)
	assert.Equal(t, 3, result.GeneratedTypes)
	assert.Equal(t, 5, result.GeneratedOperations)

	var names []string
	for _, f := range result.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"types.go", "pets_api.go", "store_api.go", "default_api.go", "metadata.go"}, names)

	for _, f := range result.Files {
		assert.True(t, strings.HasPrefix(string(f.Content),
			"// Code generated by oastypes (version v1.2.3). DO NOT EDIT.\n"), f.Name)
	}
	typeCheck(t, result)
}

func TestGenerate_Types(t *testing.T) {
	text := fileText(t, generate(t, testutil.PetstoreYAML), "types.go")

	assert.Contains(t, text, "// Pet A pet for sale. type Pet struct {")
	assert.Contains(t, text, "Id int64 `json:\"id\"`")
	assert.Contains(t, text, "Name string `json:\"name\"`")
	assert.Contains(t, text, "Nickname *string `json:\"nickname,omitempty\"`")
	assert.Contains(t, text, "Status *PetStatus `json:\"status,omitempty\"`")
	assert.Contains(t, text, "type PetStatus string")
	assert.Contains(t, text, `PetStatusAvailable PetStatus = "available"`)
	assert.Contains(t, text, `PetStatusSold PetStatus = "sold"`)
	assert.Contains(t, text, "// NewPet is generated from the API description.")

	assert.Less(t, strings.Index(text, "type Pet struct"), strings.Index(text, "type PetStatus string"))
	assert.Less(t, strings.Index(text, "type PetStatus string"), strings.Index(text, "type NewPet struct"))
}

func TestGenerate_Interfaces(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML)

	pets := fileText(t, result, "pets_api.go")
	assert.Contains(t, pets, "// PetsAPI Everything about pets type PetsAPI interface {")
	assert.Contains(t, pets, "// ListPets lists all pets. // // GET /pets // Security: apiKey.")
	assert.Contains(t, pets, "ListPets(ctx context.Context, limit *int32) ([]Pet, error)")
	assert.Contains(t, pets, "CreatePet(ctx context.Context, body NewPet) (Pet, error)")
	assert.Contains(t, pets, "DeletePetsByPetId(ctx context.Context, petId int64) error")
	assert.Contains(t, pets, `import "context"`)

	store := fileText(t, result, "store_api.go")
	assert.Contains(t, store, `// StoreAPI groups the operations tagged "store".`)
	assert.Contains(t, store, "CreatePet(ctx context.Context, body NewPet) (Pet, error)")

	def := fileText(t, result, "default_api.go")
	assert.Contains(t, def, "GetHealth(ctx context.Context) (io.ReadCloser, error)")
	assert.Contains(t, def, "// GetHealth calls GET /health.")
}

func TestGenerate_Metadata(t *testing.T) {
	text := fileText(t, generate(t, testutil.PetstoreYAML), "metadata.go")

	assert.Contains(t, text, "// Package api declares the types and operations of Petstore. package api")
	assert.Contains(t, text, `APITitle = "Petstore"`)
	assert.Contains(t, text, `APIVersion = "1.0.0"`)
	assert.Contains(t, text, `APIDescription = "A sample pet store."`)
	assert.Contains(t, text, `GeneratedAt = "Tue, 02 Jan 2024 03:04:05 UTC"`)
	assert.Contains(t, text, "GeneratedAtUnix = 1704164645")
	assert.Contains(t, text, `GeneratorInfo = "oastypes (version v1.2.3)"`)
	assert.Contains(t, text, `var Servers = []string{ "https://eu.petstore.example.com/v1/", }`)
	assert.Contains(t, text, `"PetsAPI.ListPets": {"apiKey"},`)
	assert.Contains(t, text, `"StoreAPI.CreatePet": {"apiKey"},`)
	assert.Contains(t, text, `"DefaultAPI.GetHealth": {"apiKey"},`)
	assert.NotContains(t, text, "DeletePetsByPetId")
}

func TestGenerate_ModelShapes(t *testing.T) {
	result := generate(t, modelDoc)
	text := fileText(t, result, "types.go")

	t.Run("required self reference is a pointer", func(t *testing.T) {
		assert.Contains(t, text, "Value string `json:\"value\"`")
		assert.Contains(t, text, "Next *Node `json:\"next\"`")
	})
	t.Run("cycle through an alias", func(t *testing.T) {
		assert.Contains(t, text, "B *B `json:\"b\"`")
		assert.Contains(t, text, "A *AliasOfA `json:\"a\"`")
		assert.Contains(t, text, "type AliasOfA = A")
	})
	t.Run("self-referential alias is a defined type", func(t *testing.T) {
		assert.Contains(t, text, "type Tree []Tree")
		var found bool
		for _, issue := range result.Issues {
			if issue.Severity == SeverityInfo && strings.Contains(issue.Message, "Tree refers to itself") {
				found = true
			}
		}
		assert.True(t, found, "expected an info issue for Tree")
	})
	t.Run("aliases", func(t *testing.T) {
		assert.Contains(t, text, "type Labels = map[string]string")
		assert.Contains(t, text, "type Timestamp = time.Time")
		assert.Contains(t, text, `import "time"`)
	})
	t.Run("constant collides with a type", func(t *testing.T) {
		assert.Contains(t, text, "type StatusOk = string")
		assert.Contains(t, text, `StatusOk2 Status = "ok"`)
	})

	api := fileText(t, result, "default_api.go")
	assert.Contains(t, api, "Upload(ctx context.Context, file io.Reader, note *string) error")
	assert.Contains(t, api, "PutRaw(ctx context.Context, body io.Reader) (Tree, error)")
	assert.Contains(t, api, "// Deprecated: this operation is deprecated.")

	typeCheck(t, result)
}

func TestGenerate_DefinedTypes(t *testing.T) {
	result := generate(t, modelDoc, func(g *Generator) { g.DefinedTypes = true })
	text := fileText(t, result, "types.go")

	assert.Contains(t, text, "type AliasOfA A")
	assert.Contains(t, text, "type Timestamp time.Time")
	assert.Contains(t, text, "type Labels map[string]string")
	typeCheck(t, result)
}

func TestGenerate_LimitGroups(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, func(g *Generator) { g.LimitGroups = []string{"store"} })

	var names []string
	for _, f := range result.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"types.go", "store_api.go", "metadata.go"}, names)
	assert.Equal(t, 1, result.GeneratedOperations)
	typeCheck(t, result)
}

func TestGenerate_StrictMode(t *testing.T) {
	const loose = `openapi: 3.0.3
info: {title: Loose, version: "1"}
paths: {}
components:
  schemas:
    Loose:
      type: array
`
	g := New()
	g.Info = fixedInfo
	g.StrictMode = true
	result, err := g.GenerateParsed(testutil.Parse(t, loose))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
	require.NotNil(t, result)
	assert.Equal(t, 1, result.WarningCount)

	g.StrictMode = false
	result, err = g.GenerateParsed(testutil.Parse(t, loose))
	require.NoError(t, err)
	assert.True(t, result.HasWarnings())
	assert.False(t, result.HasErrors())
	assert.Contains(t, fileText(t, result, "types.go"), "type Loose = []any")
}

func TestGenerate_IncludeInfo(t *testing.T) {
	with := generate(t, modelDoc)
	assert.Positive(t, with.InfoCount)

	without := generate(t, modelDoc, func(g *Generator) { g.IncludeInfo = false })
	assert.Zero(t, without.InfoCount)
	for _, issue := range without.Issues {
		assert.NotEqual(t, SeverityInfo, issue.Severity)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first := generate(t, modelDoc)
	for range 10 {
		again := generate(t, modelDoc)
		require.Len(t, again.Files, len(first.Files))
		for i := range first.Files {
			assert.Equal(t, first.Files[i].Name, again.Files[i].Name)
			assert.Equal(t, string(first.Files[i].Content), string(again.Files[i].Content))
		}
	}
}

func TestGenerate_PackageName(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, func(g *Generator) { g.PackageName = "petstore" })
	assert.Equal(t, "petstore", result.PackageName)
	assert.Contains(t, fileText(t, result, "types.go"), "package petstore")
}

func TestGenerateAnalysis_Nil(t *testing.T) {
	_, err := New().GenerateAnalysis(nil)
	require.Error(t, err)
}

func TestGenerateWithOptions(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)
	res, err := analyzer.AnalyzeWithOptions(analyzer.WithFilePath(path))
	require.NoError(t, err)

	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
		files   int
	}{
		{"file path", []Option{WithFilePath(path), WithGenerationInfo(fixedInfo)}, false, 5},
		{"parsed", []Option{WithParsed(testutil.Parse(t, testutil.PetstoreYAML))}, false, 5},
		{"analysis", []Option{WithAnalysis(res)}, false, 5},
		{"limited", []Option{WithFilePath(path), WithLimitGroups("pets", " ")}, false, 3},
		{"no source", nil, true, 0},
		{"two sources", []Option{WithFilePath(path), WithAnalysis(res)}, true, 0},
		{"nil analysis", []Option{WithAnalysis(nil)}, true, 0},
		{"bad package", []Option{WithFilePath(path), WithPackageName("Pets")}, true, 0},
		{"limit with analysis", []Option{WithAnalysis(res), WithLimitGroups("pets")}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GenerateWithOptions(tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, result.Files, tt.files)
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"api", true},
		{"petstore2", true},
		{"", false},
		{"Pets", false},
		{"my-api", false},
		{"type", false},
		{"2api", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var cfgErr *oaserrors.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
