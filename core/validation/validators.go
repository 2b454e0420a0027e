package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom check tags
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w\s]+$`)

	noSpaceTag    = "nospace"
	notAllNumTag  = "notallnum"
	complexityTag = "pwdcplx"
	specialRegex  = regexp.MustCompile("[^A-Za-z0-9]")

	// format tags, applied to uuid, email and uri fields
	formatTags = map[FieldType]string{
		TypeEmail: "email",
		TypeUUID:  "uuid",
		TypeURI:   "url",
	}

	// default messages: {0} is the field label, {1} the rule parameter
	defaultMessages = map[string]string{
		KindRequired:      "{0} is required",
		KindInteger:       "{0} must be an integer",
		KindMin:           "{0} must be greater than or equal to {1}",
		KindMax:           "{0} must be less than or equal to {1}",
		KindPattern:       "{0} has an invalid format",
		KindAllowedValues: "{0} must be one of [{1}]",
		KindEmail:         "{0} must be a valid email address",
		KindUUID:          "{0} must be a valid UUID",
		KindURI:           "{0} must be a valid URI",
		KindAfter:         "{0} must be on or after {1}",

		"minLength.text":  "{0} must be at least {1} characters long",
		"maxLength.text":  "{0} must be at most {1} characters long",
		"minLength.items": "{0} must contain at least {1} items",
		"maxLength.items": "{0} must contain at most {1} items",

		"type." + string(TypeString):  "{0} must be a string",
		"type." + string(TypeNumber):  "{0} must be a number",
		"type." + string(TypeDate):    "{0} must be a valid date",
		"type." + string(TypeBoolean): "{0} must be a boolean",
		"type." + string(TypeArray):   "{0} must be an array",
		"type." + string(TypeObject):  "{0} must be an object",
		"type." + string(TypeEmail):   "{0} must be an email address string",
		"type." + string(TypeUUID):    "{0} must be a UUID string",
		"type." + string(TypeURI):     "{0} must be a URI string",

		"check":                     "{0} is invalid",
		"check." + alphaNumUnderTag: "{0} may only contain alphanumeric characters and underscores",
		"check." + noSpaceTag:       "{0} must not contain whitespace",
		"check." + notAllNumTag:     "{0} cannot be entirely numeric",
		"check." + complexityTag:    "{0} must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character",
		"check.alphanum":            "{0} may only contain alphanumeric characters",
		"check.e164":                "{0} must be a valid E.164 formatted phone number",
		"check.lowercase":           "{0} must be lowercase",
	}
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	for key, text := range defaultMessages {
		if err := translator.Add(key, text, false); err != nil {
			panic(fmt.Sprintf("validation: registering message %q: %v", key, err))
		}
	}

	// register custom checks
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	_ = validate.RegisterValidation(noSpaceTag, noSpaceValidation)
	_ = validate.RegisterValidation(notAllNumTag, notAllNumValidation)
	_ = validate.RegisterValidation(complexityTag, complexityValidation)
}

// message renders the default message registered under key. Falls back to fallbackKey.
func message(key, fallbackKey string, params ...string) string {
	if s, err := translator.T(key, params...); err == nil {
		return s
	}
	s, _ := translator.T(fallbackKey, params...)
	return s
}

// checkTag runs a single validator tag against val.
// validator panics on undefined tags, which is reported as an error.
func checkTag(val interface{}, tag string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return validate.Var(val, tag) == nil, nil
}

// Custom Checks

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

func noSpaceValidation(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

func notAllNumValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, char := range s {
		if !unicode.IsDigit(char) {
			return true
		}
	}
	return s == ""
}

// complexityValidation requires 1 upper, 1 lower, 1 digit & 1 special character.
func complexityValidation(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit bool
	s := fl.Field().String()
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit && specialRegex.MatchString(s)
}
