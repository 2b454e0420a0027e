package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// SchemaDefinitionError reports a mis-specified schema. It is a programmer error and should
// abort startup.
type SchemaDefinitionError struct {
	Schema string
	Field  string // dot path of the offending field, empty for schema-level problems
	Reason string
}

func (err *SchemaDefinitionError) Error() string {
	if err.Field == "" {
		return fmt.Sprintf("schema %q: %s", err.Schema, err.Reason)
	}
	return fmt.Sprintf("schema %q: field %q: %s", err.Schema, err.Field, err.Reason)
}

// IsSchemaDefinitionError reports whether the cause of err is a *SchemaDefinitionError.
func IsSchemaDefinitionError(err error) bool {
	_, ok := errors.Cause(err).(*SchemaDefinitionError)
	return ok
}

// Schema is a compiled, immutable Definition. It is safe for concurrent use.
type Schema struct {
	name   string
	fields []*field
}

// Name returns the schema name, e.g. "user.register".
func (s *Schema) Name() string { return s.name }

type field struct {
	rule    FieldRule
	label   string
	pattern *regexp.Regexp
	after   *field // cross-field reference, sibling

	children []*field // object
	items    *field   // array
}

// Compile turns a Definition into a Schema. It performs no I/O.
func Compile(def Definition) (*Schema, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, &SchemaDefinitionError{Reason: "schema name is required"}
	}
	fields, err := compileFields(def.Name, "", def.Fields)
	if err != nil {
		return nil, err
	}
	return &Schema{name: def.Name, fields: fields}, nil
}

// MustCompile is like Compile but panics if the definition is invalid.
func MustCompile(def Definition) *Schema {
	s, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return s
}

func compileFields(schema, prefix string, rules []FieldRule) ([]*field, error) {
	fields := make([]*field, 0, len(rules))
	byName := make(map[string]*field, len(rules))

	for _, rule := range rules {
		if strings.TrimSpace(rule.Name) == "" {
			return nil, &SchemaDefinitionError{Schema: schema, Field: prefix, Reason: "field name is required"}
		}
		path := joinPath(prefix, rule.Name)
		if _, ok := byName[rule.Name]; ok {
			return nil, &SchemaDefinitionError{Schema: schema, Field: path, Reason: "duplicate field"}
		}
		fld, err := compileField(schema, path, rule)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fld)
		byName[rule.Name] = fld
	}

	// resolve cross-field references once all siblings are known
	for _, fld := range fields {
		if fld.rule.After == "" {
			continue
		}
		path := joinPath(prefix, fld.rule.Name)
		ref, ok := byName[fld.rule.After]
		switch {
		case !ok:
			return nil, &SchemaDefinitionError{
				Schema: schema, Field: path, Reason: fmt.Sprintf("cross-field reference to unknown field %q", fld.rule.After),
			}
		case ref == fld:
			return nil, &SchemaDefinitionError{Schema: schema, Field: path, Reason: "cross-field reference to itself"}
		case !fld.rule.Type.comparable() || ref.rule.Type != fld.rule.Type:
			return nil, &SchemaDefinitionError{
				Schema: schema, Field: path,
				Reason: fmt.Sprintf("cross-field reference between %s and %s fields", fld.rule.Type, ref.rule.Type),
			}
		}
		fld.after = ref
	}
	return fields, nil
}

func compileField(schema, path string, rule FieldRule) (*field, error) {
	defErr := func(format string, args ...interface{}) error {
		return &SchemaDefinitionError{Schema: schema, Field: path, Reason: fmt.Sprintf(format, args...)}
	}

	if !rule.Type.known() {
		return nil, defErr("unknown type %q", rule.Type)
	}
	fld := &field{rule: rule, label: rule.Label}
	if fld.label == "" {
		fld.label = Humanize(rule.Name)
	}

	lengthy := rule.Type.textual() || rule.Type == TypeArray
	if (rule.MinLength != nil || rule.MaxLength != nil) && !lengthy {
		return nil, defErr("minLength/maxLength do not apply to %s fields", rule.Type)
	}
	if (rule.MinLength != nil && *rule.MinLength < 0) || (rule.MaxLength != nil && *rule.MaxLength < 0) {
		return nil, defErr("negative length bound")
	}
	if rule.MinLength != nil && rule.MaxLength != nil && *rule.MinLength > *rule.MaxLength {
		return nil, defErr("minLength %d is greater than maxLength %d", *rule.MinLength, *rule.MaxLength)
	}
	if (rule.Min != nil || rule.Max != nil || rule.Integer) && rule.Type != TypeNumber {
		return nil, defErr("min/max/integer do not apply to %s fields", rule.Type)
	}
	if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
		return nil, defErr("min %v is greater than max %v", *rule.Min, *rule.Max)
	}
	if (rule.Pattern != "" || len(rule.Checks) > 0) && !rule.Type.textual() {
		return nil, defErr("pattern/checks do not apply to %s fields", rule.Type)
	}
	if len(rule.AllowedValues) > 0 && !(rule.Type.textual() || rule.Type == TypeNumber) {
		return nil, defErr("allowedValues do not apply to %s fields", rule.Type)
	}
	if len(rule.Fields) > 0 && rule.Type != TypeObject {
		return nil, defErr("fields only apply to object fields")
	}
	if rule.Items != nil && rule.Type != TypeArray {
		return nil, defErr("items only apply to array fields")
	}

	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, defErr("invalid pattern: %v", err)
		}
		fld.pattern = re
	}
	for _, tag := range rule.Checks {
		if tag == "" || strings.ContainsAny(tag, ",|") {
			return nil, defErr("check %q must be a single validator tag", tag)
		}
		if _, err := checkTag("", tag); err != nil {
			return nil, defErr("unknown check %q", tag)
		}
	}

	if len(rule.Fields) > 0 {
		children, err := compileFields(schema, path, rule.Fields)
		if err != nil {
			return nil, err
		}
		fld.children = children
	}
	if rule.Items != nil {
		itemRule := *rule.Items
		if itemRule.Name == "" {
			itemRule.Name = rule.Name
		}
		if itemRule.Label == "" {
			itemRule.Label = fld.label
		}
		if itemRule.After != "" {
			return nil, defErr("items cannot declare cross-field constraints")
		}
		items, err := compileField(schema, joinPath(path, "*"), itemRule)
		if err != nil {
			return nil, err
		}
		fld.items = items
	}
	return fld, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Humanize turns a field name into a label: "startDate" -> "Start date", "school_id" -> "School id".
func Humanize(name string) string {
	var b strings.Builder
	prevLower := false
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteRune(' ')
			}
			if i == 0 {
				b.WriteRune(r)
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			prevLower = false
		default:
			if i == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
