// Package validation compiles declarative request schemas and validates untyped payloads
// against them.
//
// A payload is validated exhaustively: every violation of every declared field is reported
// in one Outcome, in schema declaration order. Undeclared keys never reach the normalized
// payload.
package validation

// FieldType is the declared type of a field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeDate    FieldType = "date"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
	TypeUUID    FieldType = "uuid"
	TypeEmail   FieldType = "email"
	TypeURI     FieldType = "uri"
)

// Violation kinds, used as keys of FieldRule.Messages.
// Named checks (FieldRule.Checks) use their tag name as kind.
const (
	KindRequired      = "required"
	KindType          = "type"
	KindInteger       = "integer"
	KindMinLength     = "minLength"
	KindMaxLength     = "maxLength"
	KindMin           = "min"
	KindMax           = "max"
	KindPattern       = "pattern"
	KindAllowedValues = "allowedValues"
	KindEmail         = "email"
	KindUUID          = "uuid"
	KindURI           = "uri"
	KindAfter         = "after"
)

// FieldRule describes the constraints of one field.
type FieldRule struct {
	Name     string    `yaml:"name" json:"name"`
	Label    string    `yaml:"label,omitempty" json:"label,omitempty"` // defaults to the humanized Name
	Type     FieldType `yaml:"type" json:"type"`
	Required bool      `yaml:"required,omitempty" json:"required,omitempty"`

	// MinLength and MaxLength count characters for string kinds and items for arrays.
	MinLength *int     `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int     `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Integer   bool     `yaml:"integer,omitempty" json:"integer,omitempty"`

	Pattern       string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	AllowedValues []string `yaml:"allowedValues,omitempty" json:"allowedValues,omitempty"`

	// After names a sibling field this field must be greater than or equal to.
	After string `yaml:"after,omitempty" json:"after,omitempty"`

	// Checks are validator tags applied to the coerced value, e.g. "pwdcplx" or "e164".
	Checks []string `yaml:"checks,omitempty" json:"checks,omitempty"`

	Messages map[string]string `yaml:"messages,omitempty" json:"messages,omitempty"`

	Fields []FieldRule `yaml:"fields,omitempty" json:"fields,omitempty"` // object
	Items  *FieldRule  `yaml:"items,omitempty" json:"items,omitempty"`   // array
}

// Definition is the declarative form of an entity schema, e.g. "user.register".
type Definition struct {
	Name   string      `yaml:"name" json:"name"`
	Fields []FieldRule `yaml:"fields" json:"fields"`
}

func (ft FieldType) known() bool {
	switch ft {
	case TypeString, TypeNumber, TypeDate, TypeBoolean, TypeArray, TypeObject, TypeUUID, TypeEmail, TypeURI:
		return true
	}
	return false
}

// textual reports whether values of this type are strings after coercion.
func (ft FieldType) textual() bool {
	switch ft {
	case TypeString, TypeUUID, TypeEmail, TypeURI:
		return true
	}
	return false
}

// comparable reports whether fields of this type can take part in a cross-field constraint.
func (ft FieldType) comparable() bool {
	return ft == TypeDate || ft == TypeNumber
}
