package validation

import (
	"github.com/zzincafe/zzincafe-server/internal/constants"
)

// Canonical field chains. Every auth route assembles its rule set from these
// so the grammars stay in one place.

func Name() *Chain {
	return Body("name").
		Required("name is required").
		Length(constants.MinNameLength, constants.MaxNameLength, "name must be 3 to 16 characters")
}

func Email() *Chain {
	return Body("email").
		Required("email is required").
		Pattern(constants.EmailPattern, "email is not a valid address")
}

func Password() *Chain {
	return Body("password").
		Required("password is required").
		Length(constants.MinPasswordLength, constants.MaxPasswordLength, "password must be 8 to 16 characters").
		Pattern(constants.PasswordLowercasePattern, "password must contain a lowercase letter").
		Pattern(constants.PasswordDigitPattern, "password must contain a digit").
		Pattern(constants.PasswordSpecialPattern, "password must contain a special character")
}

func PasswordConfirmation() *Chain {
	return Body("password_confirmation").
		Required("password confirmation is required").
		EqualsField("password", "password confirmation must match password")
}

func NewPassword() *Chain {
	return Body("new_password").
		Required("new password is required").
		Length(constants.MinPasswordLength, constants.MaxPasswordLength, "new password must be 8 to 16 characters").
		Pattern(constants.PasswordLowercasePattern, "new password must contain a lowercase letter").
		Pattern(constants.PasswordDigitPattern, "new password must contain a digit").
		Pattern(constants.PasswordSpecialPattern, "new password must contain a special character")
}

func NewPasswordCheck() *Chain {
	return Body("new_password_check").
		Required("new password check is required").
		EqualsField("new_password", "new password check must match new password")
}

func CurrentPassword() *Chain {
	return Body("current_password").
		Required("current password is required")
}

func PhoneNumber() *Chain {
	return Body("phone_number").
		Required("phone number is required").
		Pattern(constants.PhonePattern, "phone number must look like 010-1234-5678")
}

func Content() *Chain {
	return Body("content").
		Required("content is required").
		Length(1, constants.MaxContentLength, "content must be at most 60 characters")
}

func Code() *Chain {
	return Body("code").
		Required("code is required")
}

// IDParam builds a chain for an integer-parseable path parameter such as
// cafeId, userId or reviewId.
func IDParam(name string) *Chain {
	return Param(name).
		Required(name + " is required").
		Int(name + " must be an integer")
}
