package utils

import (
	"testing"

	"github.com/checkitsa/app-checkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSAPhoneNumber_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		e164     string
		region   string
		lineType string
	}{
		{
			name:     "national format with spaces",
			input:    "082 123 4567",
			e164:     "+27821234567",
			region:   "ZA",
			lineType: "mobile",
		},
		{
			name:     "international format",
			input:    "+27 82 123 4567",
			e164:     "+27821234567",
			region:   "ZA",
			lineType: "mobile",
		},
		{
			name:     "country code without plus",
			input:    "27821234567",
			e164:     "+27821234567",
			region:   "ZA",
			lineType: "mobile",
		},
		{
			name:   "foreign number",
			input:  "+1 650-253-0000",
			e164:   "+16502530000",
			region: "US",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSAPhoneNumber(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.e164, p.E164)
			assert.Equal(t, tt.region, p.Region)
			if tt.lineType != "" {
				assert.Equal(t, tt.lineType, p.LineType)
			}
		})
	}
}

func TestParseSAPhoneNumber_Components(t *testing.T) {
	p, err := ParseSAPhoneNumber("0821234567")
	require.NoError(t, err)

	assert.Equal(t, "27", p.CountryCode)
	assert.Equal(t, "821234567", p.NationalNumber)
}

func TestParseSAPhoneNumber_Invalid(t *testing.T) {
	inputs := []string{"", "   ", "hello", "123", "+27 12"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p, err := ParseSAPhoneNumber(input)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, models.ErrInvalidPhone)
		})
	}
}

func TestParseSAPhoneNumber_ErrorOmitsInput(t *testing.T) {
	for _, input := range []string{"+27 99 123 4567", "0123", "hello"} {
		_, err := ParseSAPhoneNumber(input)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), input)
	}
}

func TestPhoneRiskFlags(t *testing.T) {
	tests := []struct {
		name  string
		phone PhoneComponents
		want  []string
	}{
		{
			name:  "local mobile has no flags",
			phone: PhoneComponents{Region: "ZA", LineType: "mobile"},
			want:  nil,
		},
		{
			name:  "foreign number",
			phone: PhoneComponents{Region: "NG", LineType: "mobile"},
			want:  []string{models.PhoneFlagForeign},
		},
		{
			name:  "local premium rate",
			phone: PhoneComponents{Region: "ZA", LineType: "premium_rate"},
			want:  []string{models.PhoneFlagPremiumRate},
		},
		{
			name:  "foreign voip",
			phone: PhoneComponents{Region: "GB", LineType: "voip"},
			want:  []string{models.PhoneFlagForeign, models.PhoneFlagVoIP},
		},
		{
			name:  "shared cost",
			phone: PhoneComponents{Region: "ZA", LineType: "shared_cost"},
			want:  []string{models.PhoneFlagSharedCost},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneRiskFlags(&tt.phone))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "27821234567", digitsOnly("+27 (82) 123-4567"))
	assert.Equal(t, "", digitsOnly("abc"))
}
