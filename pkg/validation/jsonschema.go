package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed schema/model_document.json
var defaultSchema []byte

// DefaultSchema returns the schema model documents are checked against.
func DefaultSchema() []byte {
	return append([]byte(nil), defaultSchema...)
}

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures the outcome of one structural check.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// Err returns nil for a valid result and an *Error carrying every issue
// otherwise.
func (r SchemaValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Issues: append([]SchemaIssue(nil), r.Issues...)}
}

// Error reports a document that does not conform to the schema.
type Error struct {
	Issues []SchemaIssue
}

func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation: document does not match schema"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return fmt.Sprintf("validation: document does not match schema (%d issues): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Option configures a Validator.
type Option func(*config)

type config struct {
	schema []byte
}

// WithSchema replaces the embedded schema. The payload is an OpenAPI 3 schema
// object in JSON form.
func WithSchema(raw []byte) Option {
	return func(cfg *config) {
		if len(raw) > 0 {
			cfg.schema = append([]byte(nil), raw...)
		}
	}
}

// Validator checks raw JSON documents against a schema.
type Validator struct {
	schema *openapi3.Schema
}

// NewValidator parses and checks the configured schema.
func NewValidator(ctx context.Context, options ...Option) (*Validator, error) {
	cfg := &config{schema: defaultSchema}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	schema := &openapi3.Schema{}
	if err := json.Unmarshal(cfg.schema, schema); err != nil {
		return nil, fmt.Errorf("validation: parse schema: %w", err)
	}
	if err := schema.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validation: invalid schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks a JSON document and reports every issue found.
func (v *Validator) Validate(ctx context.Context, raw []byte) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if err := ctx.Err(); err != nil {
		return invalid(SchemaIssue{Message: err.Error()})
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return invalid(SchemaIssue{Message: "document is not valid json: " + err.Error()})
	}

	if err := v.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		var issues []SchemaIssue
		collectIssues(err, &issues)
		if len(issues) == 0 {
			issues = []SchemaIssue{{Message: strings.TrimSpace(err.Error())}}
		}
		result.Valid = false
		result.Issues = issues
	}
	return result
}

func invalid(issue SchemaIssue) SchemaValidationResult {
	return SchemaValidationResult{Valid: false, Issues: []SchemaIssue{issue}}
}

func collectIssues(err error, out *[]SchemaIssue) {
	switch e := err.(type) {
	case nil:
		return
	case openapi3.MultiError:
		for _, inner := range e {
			collectIssues(inner, out)
		}
	case *openapi3.SchemaError:
		*out = append(*out, issueFromSchemaError(e))
	default:
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			*out = append(*out, issueFromSchemaError(schemaErr))
			return
		}
		*out = append(*out, SchemaIssue{Message: strings.TrimSpace(err.Error())})
	}
}

func issueFromSchemaError(err *openapi3.SchemaError) SchemaIssue {
	pointer := err.JSONPointer()
	message := strings.TrimSpace(err.Reason)
	if message == "" {
		message = fmt.Sprintf("doesn't match schema %q", err.SchemaField)
	}
	path := ""
	if len(pointer) > 0 {
		path = "/" + strings.Join(pointer, "/")
	}
	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(pointer),
		Message: message,
	}
}

// fieldPathFromPointer renders a value pointer the way users write it, e.g.
// "[0].layers[2].in_channels".
func fieldPathFromPointer(pointer []string) string {
	var b strings.Builder
	for _, segment := range pointer {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			b.WriteString("[" + segment + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}
	return b.String()
}
