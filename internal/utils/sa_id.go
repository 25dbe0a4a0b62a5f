package utils

import (
	"strconv"
	"time"

	"github.com/checkitsa/app-checkit/internal/models"
)

const saIDLength = 13

// ValidateSAID validates a South African ID number against the current date.
func ValidateSAID(id string) models.IdVerificationResult {
	return ValidateSAIDAt(id, time.Now())
}

// ValidateSAIDAt validates a South African ID number and decodes its birth
// date, gender and citizenship. now is the reference for century inference.
//
// Invalid input is reported through the result, never as an error.
func ValidateSAIDAt(id string, now time.Time) models.IdVerificationResult {
	if !isASCIIDigits(id, saIDLength) {
		return models.IdVerificationResult{
			Message: models.MessageIDFormat,
			Reason:  models.ReasonFormat,
			Err:     models.ErrIDFormat,
		}
	}

	if !LuhnValid(id) {
		return models.IdVerificationResult{
			Message: models.MessageIDChecksum,
			Reason:  models.ReasonChecksum,
			Err:     models.ErrIDChecksum,
		}
	}

	return models.IdVerificationResult{
		Valid:   true,
		Message: models.MessageIDValid,
		Data: &models.IdVerificationData{
			DateOfBirth: decodeBirthDate(id, now),
			Gender:      decodeGender(id),
			Citizenship: decodeCitizenship(id),
		},
	}
}

// LuhnValid reports whether a string of ASCII digits passes the Luhn check.
// It does not validate its input; callers check the format first.
func LuhnValid(digits string) bool {
	sum := 0
	double := false

	// Process digits from right to left
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

func isASCIIDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// decodeBirthDate builds YYYY-MM-DD from YYMMDD. A two-digit year above the
// current one belongs to the 1900s, anything else (ties included) to the
// 2000s. The date is not checked against the calendar.
func decodeBirthDate(id string, now time.Time) string {
	yy, _ := strconv.Atoi(id[0:2])
	century := "20"
	if yy > now.Year()%100 {
		century = "19"
	}
	return century + id[0:2] + "-" + id[2:4] + "-" + id[4:6]
}

func decodeGender(id string) models.Gender {
	sequence, _ := strconv.Atoi(id[6:10])
	if sequence >= 5000 {
		return models.GenderMale
	}
	return models.GenderFemale
}

// decodeCitizenship maps 0 to citizen and every other digit to permanent
// resident; only 0 and 1 are issued.
func decodeCitizenship(id string) models.Citizenship {
	if id[10] == '0' {
		return models.CitizenshipCitizen
	}
	return models.CitizenshipPermanentResident
}
