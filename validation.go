package jwt

import (
	"fmt"
	"strings"
)

const (
	maxStringLength = 256
	maxArraySize    = 100
	maxExtraSize    = 50
)

// validateClaims enforces structural limits on processor claims so a
// single token cannot carry unbounded data.
func validateClaims(claims *Claims) error {
	if claims.UserID == "" && claims.Username == "" {
		return ErrInvalidClaims
	}

	fields := map[string]string{
		"UserID":   claims.UserID,
		"Username": claims.Username,
		"Role":     claims.Role,
		"Issuer":   claims.Issuer,
		"Subject":  claims.Subject,
		"ID":       claims.ID,
	}
	for name, value := range fields {
		if err := validateString(name, value); err != nil {
			return err
		}
	}

	if err := validateStringArray("permissions", claims.Permissions); err != nil {
		return err
	}
	if err := validateStringArray("scopes", claims.Scopes); err != nil {
		return err
	}
	if err := validateStringArray("audience", claims.Audience); err != nil {
		return err
	}

	if len(claims.Extra) > maxExtraSize {
		return &ValidationError{
			Field:   "extra",
			Message: fmt.Sprintf("too many fields: maximum %d allowed", maxExtraSize),
		}
	}
	for key := range claims.Extra {
		if err := validateString("extra key", key); err != nil {
			return err
		}
	}

	return nil
}

func validateString(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > maxStringLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("too long: maximum %d characters allowed", maxStringLength),
		}
	}
	if strings.ContainsRune(value, 0) {
		return &ValidationError{Field: field, Message: "contains null byte"}
	}
	return nil
}

func validateStringArray(field string, values []string) error {
	if len(values) > maxArraySize {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("too many items: maximum %d allowed", maxArraySize),
		}
	}
	for i, value := range values {
		if err := validateString(fmt.Sprintf("%s[%d]", field, i), value); err != nil {
			return err
		}
	}
	return nil
}
