package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

// IsValidZipCode reports whether s is a 5-digit US zip. Checked before any
// storage access; anything else is invalid_format.
func IsValidZipCode(s string) bool {
	return zipCodePattern.MatchString(s)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, ValidationError{"name", "must not exceed 200 characters"})
	}

	if !IsValidZipCode(input.ZipCode) {
		errs = append(errs, ValidationError{"zip_code", "must be a 5-digit zip code"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errs = append(errs, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}

	return errs
}

func ValidateClaimInput(input ClaimTerritoryInput) []ValidationError {
	var errs []ValidationError

	if !IsValidZipCode(input.ZipCode) {
		errs = append(errs, ValidationError{"zip_code", "must be a 5-digit zip code"})
	}
	if strings.TrimSpace(input.UserID) == "" {
		errs = append(errs, ValidationError{"user_id", "is required"})
	}

	return errs
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 11
}

func validationMessage(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
