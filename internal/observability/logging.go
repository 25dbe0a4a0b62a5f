package observability

import (
	"strings"
	"unicode/utf8"

	"github.com/checkitsa/app-checkit/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskIDNumber masks an ID number for logging, keeping the birth-date prefix
// and the checksum digit.
func MaskIDNumber(id string) string {
	if len(id) != 13 {
		return "*************"
	}
	return id[:6] + "******" + id[12:]
}

// MaskPhone keeps only the last three digits of a phone number.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	_, size := utf8.DecodeRuneInString(email)
	return email[:size] + "***" + email[at:]
}
