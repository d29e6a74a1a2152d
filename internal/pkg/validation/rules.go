package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Interest keyword pattern - lowercase words, digits, hyphens
	KeywordPattern = `^[a-z0-9][a-z0-9\- ]{0,48}[a-z0-9]$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email   *regexp.Regexp
	Keyword *regexp.Regexp
}{
	Email:   regexp.MustCompile(EmailPattern),
	Keyword: regexp.MustCompile(KeywordPattern),
}

// IsValidEmail checks an email address against the email pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidKeyword checks an interest keyword against the keyword pattern.
func IsValidKeyword(keyword string) bool {
	return CompiledPatterns.Keyword.MatchString(keyword)
}
