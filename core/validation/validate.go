package validation

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trezcool/masomo/core"
)

// Outcome is the result of validating a payload: either valid with a normalized payload, or
// invalid with an ordered list of field errors.
type Outcome struct {
	payload map[string]interface{}
	errs    []core.FieldError
}

// Valid reports whether the payload passed validation.
func (o Outcome) Valid() bool { return len(o.errs) == 0 }

// Payload returns the normalized payload, nil when the outcome is invalid.
func (o Outcome) Payload() map[string]interface{} {
	if !o.Valid() {
		return nil
	}
	return o.payload
}

// Errors returns the field errors in schema declaration order, cross-field errors last.
func (o Outcome) Errors() []core.FieldError { return o.errs }

// run holds the state of one Validate call.
type run struct {
	errs  []core.FieldError
	cross []core.FieldError
}

func (r *run) fail(path, msg string) {
	r.errs = append(r.errs, core.FieldError{Field: path, Message: msg})
}

// Validate checks payload against schema. It never fails on bad input: every violation is
// reported in the returned Outcome.
func Validate(schema *Schema, payload map[string]interface{}) Outcome {
	r := new(run)
	out := r.object(schema.fields, "", payload)
	errs := append(r.errs, r.cross...)
	if len(errs) > 0 {
		return Outcome{errs: errs}
	}
	return Outcome{payload: out}
}

// object validates the declared fields of input; undeclared keys are dropped.
func (r *run) object(fields []*field, prefix string, input map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	clean := make(map[*field]bool, len(fields))

	for _, fld := range fields {
		path := joinPath(prefix, fld.rule.Name)
		raw, present := input[fld.rule.Name]
		if !present || isBlank(raw) {
			if fld.rule.Required {
				r.fail(path, fld.msg(KindRequired, ""))
			}
			continue
		}
		before := len(r.errs)
		if val, ok := r.value(fld, path, raw); ok {
			out[fld.rule.Name] = val
		}
		clean[fld] = len(r.errs) == before
	}

	for _, fld := range fields {
		if fld.after == nil || !clean[fld] || !clean[fld.after] {
			continue
		}
		if less(out[fld.rule.Name], out[fld.after.rule.Name]) {
			r.cross = append(r.cross, core.FieldError{
				Field:   joinPath(prefix, fld.rule.Name),
				Message: fld.msg(KindAfter, fld.after.label),
			})
		}
	}
	return out
}

// value coerces raw and applies every bound of fld. ok is false on a type mismatch.
func (r *run) value(fld *field, path string, raw interface{}) (interface{}, bool) {
	val, ok := coerce(fld.rule.Type, raw)
	if !ok {
		r.fail(path, fld.msg("type."+string(fld.rule.Type), ""))
		return nil, false
	}

	switch v := val.(type) {
	case string:
		r.text(fld, path, v)
	case float64:
		r.number(fld, path, v)
	case []interface{}:
		r.length(fld, path, len(v), "items")
		if fld.items != nil {
			items := make([]interface{}, 0, len(v))
			for i, elem := range v {
				elemPath := joinPath(path, strconv.Itoa(i))
				if isBlank(elem) {
					r.fail(elemPath, fld.items.msg(KindRequired, ""))
					continue
				}
				if item, ok := r.value(fld.items, elemPath, elem); ok {
					items = append(items, item)
				}
			}
			val = items
		}
	case map[string]interface{}:
		val = r.object(fld.children, path, v)
	}
	return val, true
}

func (r *run) text(fld *field, path, s string) {
	r.length(fld, path, utf8.RuneCountInString(s), "text")
	if tag, ok := formatTags[fld.rule.Type]; ok {
		if valid, _ := checkTag(s, tag); !valid {
			r.fail(path, fld.msg(string(fld.rule.Type), ""))
		}
	}
	if fld.pattern != nil && !fld.pattern.MatchString(s) {
		r.fail(path, fld.msg(KindPattern, fld.rule.Pattern))
	}
	if len(fld.rule.AllowedValues) > 0 && !allowed(fld.rule.AllowedValues, s) {
		r.fail(path, fld.msg(KindAllowedValues, strings.Join(fld.rule.AllowedValues, ", ")))
	}
	for _, tag := range fld.rule.Checks {
		if valid, _ := checkTag(s, tag); !valid {
			r.fail(path, fld.checkMsg(tag))
		}
	}
}

func (r *run) number(fld *field, path string, n float64) {
	rule := fld.rule
	if rule.Integer && n != math.Trunc(n) {
		r.fail(path, fld.msg(KindInteger, ""))
	}
	if rule.Min != nil && n < *rule.Min {
		r.fail(path, fld.msg(KindMin, formatNumber(*rule.Min)))
	}
	if rule.Max != nil && n > *rule.Max {
		r.fail(path, fld.msg(KindMax, formatNumber(*rule.Max)))
	}
	if len(rule.AllowedValues) > 0 && !allowed(rule.AllowedValues, formatNumber(n)) {
		r.fail(path, fld.msg(KindAllowedValues, strings.Join(rule.AllowedValues, ", ")))
	}
}

// length checks minLength/maxLength; unit is "text" or "items".
func (r *run) length(fld *field, path string, n int, unit string) {
	if min := fld.rule.MinLength; min != nil && n < *min {
		r.fail(path, fld.lengthMsg(KindMinLength, unit, *min))
	}
	if max := fld.rule.MaxLength; max != nil && n > *max {
		r.fail(path, fld.lengthMsg(KindMaxLength, unit, *max))
	}
}

func (fld *field) msg(kind, param string) string {
	name := kind
	if strings.HasPrefix(kind, "type.") {
		name = KindType
	}
	if custom, ok := fld.rule.Messages[name]; ok {
		return custom
	}
	return message(kind, "check", fld.label, param)
}

func (fld *field) lengthMsg(kind, unit string, n int) string {
	if custom, ok := fld.rule.Messages[kind]; ok {
		return custom
	}
	return message(kind+"."+unit, "check", fld.label, strconv.Itoa(n))
}

func (fld *field) checkMsg(tag string) string {
	name := tag
	if i := strings.IndexByte(tag, '='); i >= 0 {
		name = tag[:i]
	}
	if custom, ok := fld.rule.Messages[name]; ok {
		return custom
	}
	return message("check."+name, "check", fld.label)
}

func isBlank(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}

func allowed(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// less compares two coerced values of the same comparable type.
func less(a, b interface{}) bool {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Before(y)
	case float64:
		y, ok := b.(float64)
		return ok && x < y
	}
	return false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Names returns the top-level field names of schema in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, fld := range s.fields {
		names = append(names, fld.rule.Name)
	}
	return names
}

// Required returns the sorted names of the required top-level fields of s.
func (s *Schema) Required() []string {
	var names []string
	for _, fld := range s.fields {
		if fld.rule.Required {
			names = append(names, fld.rule.Name)
		}
	}
	sort.Strings(names)
	return names
}
