package todosrepobridge

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const schemaBaseURL = "https://github.com/jrazmi/todos/schemas/"

var (
	createTodoSchema = mustCompileSchema("create_todo.json")
	updateTodoSchema = mustCompileSchema("update_todo.json")
	todoIDSchema     = mustCompileSchema("todo_id.json")
)

func mustCompileSchema(name string) *jsonschema.Schema {
	schema, err := compileSchema(name)
	if err != nil {
		panic(err)
	}
	return schema
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile(path.Join("schemas", name))
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	url := schemaBaseURL + name
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return schema, nil
}

// SchemaError describes the first failing location of a request body.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// validateBody checks raw JSON against schema before it is decoded into a
// Go struct.
func validateBody(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return mapSchemaError(err)
	}

	return nil
}

func mapSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &SchemaError{Message: err.Error()}
	}

	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	return &SchemaError{
		Path:    jsonPointerToPath(leaf.InstanceLocation),
		Message: leaf.Message,
	}
}

// jsonPointerToPath turns "/a/b" into "a.b".
func jsonPointerToPath(pointer string) string {
	return strings.ReplaceAll(strings.TrimPrefix(pointer, "/"), "/", ".")
}
