package events

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "events.schema.json"

//go:embed schema/events.schema.json
var schemaJSON []byte

// Schema returns the embedded event detail schema.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

// ValidationError describes a detail that does not match its schema.
type ValidationError struct {
	Path string // dot path inside the detail
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("detail.%s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("detail: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	schemaMu    sync.Mutex
	schemaCache = map[Type]*jsonschema.Schema{}
)

// HasSchema reports whether the embedded schema describes typ.
func HasSchema(typ Type) bool {
	switch typ {
	case TypeCounterChanged, TypeCreate:
		return true
	default:
		return false
	}
}

// ValidateDetail checks the detail of e against the schema for its type.
// Types without a schema are not checked. All failures are returned.
func ValidateDetail(e *Event) []error {
	if e == nil || !HasSchema(e.Type) {
		return nil
	}

	schema, err := compiledSchema(e.Type)
	if err != nil {
		return []error{err}
	}

	// Round-trip through JSON so struct details validate the way they are logged.
	data, err := json.Marshal(e.Detail)
	if err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("marshal detail: %w", err)}}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("unmarshal detail: %w", err)}}
	}

	if err := schema.Validate(doc); err != nil {
		return schemaErrors(err)
	}
	return nil
}

func compiledSchema(typ Type) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[typ]; ok {
		return s, nil
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load event schema: %w", err)
	}
	s, err := compiler.Compile(schemaURL + "#/$defs/" + string(typ))
	if err != nil {
		return nil, fmt.Errorf("compile event schema %s: %w", typ, err)
	}
	schemaCache[typ] = s
	return s, nil
}

func schemaErrors(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath converts "/items/0/count" to "items[0].count".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
