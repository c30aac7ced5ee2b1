package domain

import (
	"errors"
	"fmt"
)

// Error is a recoverable business rule violation. Args feed placeholder
// substitution in the localized message for the code.
type Error struct {
	Code Code
	Args map[string]string
}

func (e *Error) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("business error %d", e.Code)
	}
	return fmt.Sprintf("business error %d %v", e.Code, e.Args)
}

// E builds a business error for a code.
func E(code Code) *Error {
	return &Error{Code: code}
}

// Ef builds a business error with message arguments, given as key/value pairs.
func Ef(code Code, kv ...string) *Error {
	args := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		args[kv[i]] = kv[i+1]
	}
	return &Error{Code: code, Args: args}
}

// CodeOf extracts the business code from err, or CodeInternalServerError for
// anything that is not a *domain.Error (persistence failures and the like).
func CodeOf(err error) Code {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternalServerError
}

// IsCode reports whether err is a business error with the given code.
func IsCode(err error, code Code) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == code
}
