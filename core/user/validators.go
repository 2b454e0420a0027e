package user

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/masomo/core"
)

var (
	pwdMaxSim      = .7
	pwdAttrSimText = "Password cannot be similar to user attributes"

	emailExistsText = "A user with this email already exists"
)

// passwordSimilarity rejects a password that looks too much like one of the user attributes.
// The shape rules (length, complexity, ...) are the request schema's business.
func passwordSimilarity(pwd string, attrs ...string) error {
	chars := strings.Split(strings.ToLower(pwd), "")
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		m := difflib.NewMatcher(chars, strings.Split(strings.ToLower(attr), ""))
		if m.QuickRatio() >= pwdMaxSim && m.Ratio() >= pwdMaxSim {
			return core.NewValidationError(ErrPasswordTooSimilar, core.FieldError{Field: "password", Message: pwdAttrSimText})
		}
	}
	return nil
}

// emailLocalPart is compared on its own since the domain rarely looks like a password.
func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
