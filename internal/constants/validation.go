package constants

// Field Length Limits
const (
	MinNameLength     = 3
	MaxNameLength     = 16
	MinPasswordLength = 8
	MaxPasswordLength = 16
	MaxContentLength  = 60
	MaxEmailLength    = 255
)

// Validation Patterns
const (
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

	// Korean mobile prefix form; the looser NNN-NNNN-NNNN variant was dropped
	// in favor of this one.
	PhonePattern = `^01[016789]-\d{3,4}-\d{4}$`

	// At least one lowercase letter, one digit and one special character;
	// total length is bounded separately by Min/MaxPasswordLength.
	PasswordLowercasePattern = `[a-z]`
	PasswordDigitPattern     = `[0-9]`
	PasswordSpecialPattern   = `[!@#$%^*()\-_=+\\|\[\]{};:'",.<>/?]`
)
