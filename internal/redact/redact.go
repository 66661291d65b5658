// Package redact masks credentials in strings before they are logged:
// database connection URLs from configuration and free-form error text
// returned by the scoring service.
package redact

import (
	"net/url"
	"regexp"
)

// Redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb|db|database|connection)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|authorization|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	patterns = []struct {
		re          *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, "${1}://" + RedactedCredentialPlaceholder + "@"},
		{passwordRegex, "${1}${2}" + RedactedCredentialPlaceholder},
		{apiKeyRegex, "${1}${2}" + RedactedKeyPlaceholder},
	}
)

// String redacts credentials from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}

	return result
}

// Error redacts credentials from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// DatabaseURL masks the password of a connection URL and any password
// query parameter. Inputs that do not parse as URLs are passed to String.
func DatabaseURL(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return String(raw)
	}

	q := u.Query()
	if q.Has("password") {
		q.Set("password", RedactionPlaceholder)
		u.RawQuery = q.Encode()
	}

	// url.Redacted replaces the password with "xxxxx".
	return u.Redacted()
}
