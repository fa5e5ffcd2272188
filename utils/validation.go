// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidQuoteStatuses are the states a quote can move through
var ValidQuoteStatuses = []string{"draft", "pending", "approved", "rejected", "revision"}

// ValidateQuoteStatus reports whether s is an allowed quote status
func ValidateQuoteStatus(s string) bool {
	for _, v := range ValidQuoteStatuses {
		if s == v {
			return true
		}
	}
	return false
}
