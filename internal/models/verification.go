package models

// Gender decoded from the sequence block of an ID number.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Citizenship decoded from the citizenship digit of an ID number.
type Citizenship string

const (
	CitizenshipCitizen           Citizenship = "Citizen"
	CitizenshipPermanentResident Citizenship = "PermanentResident"
)

// Reason codes carried on negative results.
const (
	ReasonFormat           = "format"
	ReasonChecksum         = "checksum"
	ReasonMalformedRequest = "malformed_request"
	// ReasonInvalid marks phone and email checks that failed parsing
	ReasonInvalid = "invalid"
)

// User-facing messages for ID verification outcomes.
const (
	MessageIDValid          = "Valid South African ID number."
	MessageIDFormat         = "Invalid ID: Must be exactly 13 digits."
	MessageIDChecksum       = "Invalid ID: Failed checksum validation (this ID does not exist)."
	MessageMalformedRequest = "Invalid request body."
)

// IdVerificationRequest is the body of POST /v1/verify/id
// swagger:model
type IdVerificationRequest struct {
	// A missing field is a malformed request; an empty string is a format
	// failure.
	IDNumber *string `json:"idNumber" binding:"required" example:"8001015009087"`
}

// IdVerificationData holds the fields decoded from a valid ID number
type IdVerificationData struct {
	// ISO date, YYYY-MM-DD
	DateOfBirth string      `json:"dateOfBirth" example:"1980-01-01"`
	Gender      Gender      `json:"gender" example:"Male"`
	Citizenship Citizenship `json:"citizenship" example:"Citizen"`
}

// IdVerificationResult is the verdict for an ID number. Data is set if and
// only if Valid is true.
// swagger:model
type IdVerificationResult struct {
	Valid   bool                `json:"valid"`
	Message string              `json:"message"`
	Reason  string              `json:"reason,omitempty"`
	Data    *IdVerificationData `json:"data,omitempty"`

	// Err matches ErrIDFormat, ErrIDChecksum or ErrMalformedRequest on
	// negative results.
	Err error `json:"-"`
}

// NewMalformedRequestResult builds the negative result returned when the
// request body cannot be decoded.
func NewMalformedRequestResult() IdVerificationResult {
	return IdVerificationResult{
		Valid:   false,
		Message: MessageMalformedRequest,
		Reason:  ReasonMalformedRequest,
		Err:     ErrMalformedRequest,
	}
}

// Outcome is the metrics label for the result.
func (r IdVerificationResult) Outcome() string {
	if r.Valid {
		return "valid"
	}
	return r.Reason
}
