package models

// PhoneCheckRequest is the body of POST /v1/verify/phone
// swagger:model
type PhoneCheckRequest struct {
	// National (082 123 4567) or international (+27 82 123 4567) format
	Phone string `json:"phone" binding:"required" example:"082 123 4567"`
}

// Phone check messages
const (
	MessagePhoneValid   = "Valid phone number."
	MessagePhoneInvalid = "Invalid phone number."
)

// Phone risk flags
const (
	PhoneFlagForeign     = "foreign_number"
	PhoneFlagPremiumRate = "premium_rate"
	PhoneFlagVoIP        = "voip"
	PhoneFlagSharedCost  = "shared_cost"
	PhoneFlagPersonal    = "personal_number"
)

// PhoneCheckResult is the verdict for a phone number
// swagger:model
type PhoneCheckResult struct {
	Valid          bool     `json:"valid"`
	Message        string   `json:"message"`
	CountryCode    string   `json:"countryCode,omitempty" example:"27"`
	NationalNumber string   `json:"nationalNumber,omitempty" example:"821234567"`
	E164           string   `json:"e164,omitempty" example:"+27821234567"`
	Region         string   `json:"region,omitempty" example:"ZA"`
	LineType       string   `json:"lineType,omitempty" example:"mobile"`
	Local          bool     `json:"local"`
	RiskFlags      []string `json:"riskFlags,omitempty"`
}
