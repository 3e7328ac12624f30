package security

import (
	"fmt"
	"unicode/utf8"
)

const (
	// MinPasswordLength is the minimum number of characters accepted at signup.
	MinPasswordLength = 10
	// PhoneDigits is the exact number of digits a phone number must have.
	PhoneDigits = 10
)

// RuleViolation represents a single credential rule violation.
type RuleViolation struct {
	Code    string
	Message string
}

// Error implements error for RuleViolation.
func (e *RuleViolation) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Rule validates a single input value according to a specific policy rule.
type Rule interface {
	Validate(value string) error
}

// RuleFunc adapts a function to be used as a Rule.
type RuleFunc func(value string) error

// Validate executes the underlying rule function.
func (f RuleFunc) Validate(value string) error {
	return f(value)
}

// Validator applies a sequence of rules and stops at the first violation.
type Validator struct {
	rules []Rule
}

// NewValidator constructs a validator with the provided rules.
func NewValidator(rules ...Rule) *Validator {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Validator{rules: copied}
}

// Validate executes all rules and returns the first encountered violation.
func (v *Validator) Validate(value string) error {
	if v == nil {
		return nil
	}
	for _, rule := range v.rules {
		if err := rule.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// MinLengthRule ensures the value has at least min characters (code points, not bytes).
func MinLengthRule(min int) Rule {
	return RuleFunc(func(value string) error {
		if utf8.RuneCountInString(value) < min {
			return &RuleViolation{
				Code:    "password_too_short",
				Message: fmt.Sprintf("Password must be at least %d characters long", min),
			}
		}
		return nil
	})
}

// ExactDigitsRule ensures the value consists of exactly n ASCII digits.
func ExactDigitsRule(n int) Rule {
	return RuleFunc(func(value string) error {
		valid := len(value) == n
		for i := 0; valid && i < len(value); i++ {
			valid = value[i] >= '0' && value[i] <= '9'
		}
		if !valid {
			return &RuleViolation{
				Code:    "invalid_phone",
				Message: fmt.Sprintf("Phone number must be exactly %d digits", n),
			}
		}
		return nil
	})
}

// DefaultPasswordValidator enforces the signup password policy.
func DefaultPasswordValidator() *Validator {
	return NewValidator(MinLengthRule(MinPasswordLength))
}

// DefaultPhoneValidator enforces the signup phone format.
func DefaultPhoneValidator() *Validator {
	return NewValidator(ExactDigitsRule(PhoneDigits))
}
