// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastypes/parser"
)

// PetstoreYAML is a small OpenAPI 3.0 document with two tagged groups, an untagged
// operation, an enum, a nullable field and a security scheme.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  description: A sample pet store.
  version: "1.0.0"
servers:
  - url: https://{region}.petstore.example.com/v1
    variables:
      region:
        default: eu
security:
  - apiKey: []
tags:
  - name: pets
    description: Everything about pets
paths:
  /pets:
    get:
      operationId: listPets
      summary: lists all pets.
      tags: [pets]
      parameters:
        - name: limit
          in: query
          schema: {type: integer, format: int32}
      responses:
        "200":
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items: {$ref: '#/components/schemas/Pet'}
    post:
      operationId: createPet
      tags: [pets, store]
      requestBody:
        required: true
        content:
          application/json:
            schema: {$ref: '#/components/schemas/NewPet'}
      responses:
        "201":
          description: Created
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Pet'}
  /pets/{petId}:
    delete:
      tags: [pets]
      security: []
      parameters:
        - name: petId
          in: path
          required: true
          schema: {type: integer, format: int64}
      responses:
        "204":
          description: deleted
  /health:
    get:
      responses:
        "200":
          description: ok
          content:
            text/plain:
              schema: {type: string}
components:
  securitySchemes:
    apiKey:
      type: apiKey
      in: header
      name: X-API-Key
  schemas:
    Pet:
      type: object
      description: A pet for sale.
      required: [id, name]
      properties:
        id: {type: integer, format: int64}
        name: {type: string}
        nickname: {type: string, nullable: true}
        status: {$ref: '#/components/schemas/PetStatus'}
    NewPet:
      type: object
      required: [name]
      properties:
        name: {type: string}
    PetStatus:
      type: string
      enum: [available, pending, sold]
`

// WriteTempFile writes content to name inside a per-test temporary directory and returns
// its path. The directory is removed when the test completes.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}

// Parse parses an in-memory document and fails the test on error.
func Parse(t *testing.T, src string) *parser.ParseResult {
	t.Helper()

	pr, err := parser.New().ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return pr
}
