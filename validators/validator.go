package validators

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// reservedUsernames are rejected case-insensitively.
var reservedUsernames = map[string]bool{
	"admin":     true,
	"root":      true,
	"api":       true,
	"support":   true,
	"moderator": true,
	"system":    true,
	"help":      true,
	"about":     true,
	"settings":  true,
}

// CustomValidator adapts go-playground/validator to the echo Validator interface.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator builds the validator with the custom username rule registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("username", validUsername)
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// validUsername requires lowercase [a-z0-9_]{3,30} and rejects reserved words
// regardless of the case they were submitted in.
func validUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if !usernamePattern.MatchString(username) {
		return false
	}
	return !reservedUsernames[strings.ToLower(username)]
}

// IsReservedUsername reports whether the name is reserved, ignoring case.
func IsReservedUsername(username string) bool {
	return reservedUsernames[strings.ToLower(username)]
}
