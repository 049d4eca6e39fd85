package user

import (
	"fmt"
	"strings"
)

const (
	MinPasswordLen = 6
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused outright.
	MaxPasswordBytes = 72
	MaxNameLen       = 100
	MaxEmailLen      = 320
)

// Validator checks user input before anything is hashed or stored.
type Validator interface {
	ValidateRegister(name, email, password string) error
	ValidatePassword(password string) error
	ValidatePreferences(prefs Preferences) error
}

type CredentialsValidator struct{}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{}
}

// ValidateRegister expects name and email already trimmed.
func (v *CredentialsValidator) ValidateRegister(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return invalid("All fields are required")
	}

	if len([]rune(name)) > MaxNameLen {
		return invalid(fmt.Sprintf("Name must be at most %d characters", MaxNameLen))
	}

	if len(email) > MaxEmailLen {
		return invalid(fmt.Sprintf("Email must be at most %d characters", MaxEmailLen))
	}

	return v.ValidatePassword(password)
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLen {
		return invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLen))
	}

	if len(password) > MaxPasswordBytes {
		return invalid(fmt.Sprintf("Password must be at most %d bytes", MaxPasswordBytes))
	}

	return nil
}

func (v *CredentialsValidator) ValidatePreferences(prefs Preferences) error {
	if strings.TrimSpace(prefs.DefaultSourceLang) == "" || strings.TrimSpace(prefs.DefaultTargetLang) == "" {
		return invalid("Default languages are required")
	}

	switch prefs.Theme {
	case "dark", "light":
	default:
		return invalid("Theme must be either dark or light")
	}

	return nil
}
