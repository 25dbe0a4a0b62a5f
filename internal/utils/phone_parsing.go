package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is assumed for numbers given without a country code.
const DefaultPhoneRegion = "ZA"

// PhoneComponents represents the parsed components of a phone number
type PhoneComponents struct {
	CountryCode    string
	NationalNumber string
	E164           string
	Region         string
	LineType       string
}

// ParseSAPhoneNumber parses a phone number in national South African format
// (082 123 4567) or any international format (+44 20 7946 0958).
func ParseSAPhoneNumber(phoneString string) (*PhoneComponents, error) {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return nil, fmt.Errorf("%w: empty", models.ErrInvalidPhone)
	}

	// 27821234567 without the plus is common in pasted numbers
	if strings.HasPrefix(cleanPhone, "27") && len(digitsOnly(cleanPhone)) == 11 {
		cleanPhone = "+" + cleanPhone
	}

	num, err := phonenumbers.Parse(cleanPhone, DefaultPhoneRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPhone, err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return nil, fmt.Errorf("%w: not a valid number", models.ErrInvalidPhone)
	}

	return &PhoneComponents{
		CountryCode:    strconv.Itoa(int(num.GetCountryCode())),
		NationalNumber: phonenumbers.GetNationalSignificantNumber(num),
		E164:           phonenumbers.Format(num, phonenumbers.E164),
		Region:         phonenumbers.GetRegionCodeForNumber(num),
		LineType:       lineTypeName(phonenumbers.GetNumberType(num)),
	}, nil
}

// PhoneRiskFlags lists the traits of a parsed number that are common in
// scam contact details.
func PhoneRiskFlags(p *PhoneComponents) []string {
	var flags []string
	if p.Region != DefaultPhoneRegion {
		flags = append(flags, models.PhoneFlagForeign)
	}
	switch p.LineType {
	case "premium_rate":
		flags = append(flags, models.PhoneFlagPremiumRate)
	case "voip":
		flags = append(flags, models.PhoneFlagVoIP)
	case "shared_cost":
		flags = append(flags, models.PhoneFlagSharedCost)
	case "personal_number":
		flags = append(flags, models.PhoneFlagPersonal)
	}
	return flags
}

func lineTypeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FIXED_LINE:
		return "fixed_line"
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixed_line_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.PREMIUM_RATE:
		return "premium_rate"
	case phonenumbers.SHARED_COST:
		return "shared_cost"
	case phonenumbers.VOIP:
		return "voip"
	case phonenumbers.PERSONAL_NUMBER:
		return "personal_number"
	case phonenumbers.PAGER:
		return "pager"
	case phonenumbers.UAN:
		return "uan"
	case phonenumbers.VOICEMAIL:
		return "voicemail"
	default:
		return "unknown"
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
