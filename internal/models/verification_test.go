package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdVerificationResult_JSON(t *testing.T) {
	t.Run("negative result omits data", func(t *testing.T) {
		result := IdVerificationResult{
			Valid:   false,
			Message: MessageIDFormat,
			Reason:  ReasonFormat,
			Err:     ErrIDFormat,
		}

		raw, err := json.Marshal(result)
		require.NoError(t, err)
		assert.JSONEq(t, `{"valid":false,"message":"Invalid ID: Must be exactly 13 digits.","reason":"format"}`, string(raw))
	})

	t.Run("positive result carries data", func(t *testing.T) {
		result := IdVerificationResult{
			Valid:   true,
			Message: MessageIDValid,
			Data: &IdVerificationData{
				DateOfBirth: "1980-01-01",
				Gender:      GenderMale,
				Citizenship: CitizenshipCitizen,
			},
		}

		raw, err := json.Marshal(result)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"valid": true,
			"message": "Valid South African ID number.",
			"data": {"dateOfBirth": "1980-01-01", "gender": "Male", "citizenship": "Citizen"}
		}`, string(raw))
	})
}

func TestNewMalformedRequestResult(t *testing.T) {
	result := NewMalformedRequestResult()

	assert.False(t, result.Valid)
	assert.Nil(t, result.Data)
	assert.Equal(t, ReasonMalformedRequest, result.Reason)
	assert.True(t, errors.Is(result.Err, ErrMalformedRequest))
	assert.Equal(t, "malformed_request", result.Outcome())
}

func TestIdVerificationResult_Outcome(t *testing.T) {
	assert.Equal(t, "valid", IdVerificationResult{Valid: true}.Outcome())
	assert.Equal(t, "checksum", IdVerificationResult{Reason: ReasonChecksum}.Outcome())
}

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{29, RiskLow},
		{30, RiskMedium},
		{59, RiskMedium},
		{60, RiskHigh},
		{100, RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestHashSubject(t *testing.T) {
	a := HashSubject(CheckKindEmail, "Jane@Example.com ")
	b := HashSubject(CheckKindEmail, "jane@example.com")
	c := HashSubject(CheckKindPhone, "jane@example.com")

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "kind is part of the hash")
}
