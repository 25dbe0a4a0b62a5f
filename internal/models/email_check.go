package models

// EmailCheckRequest is the body of POST /v1/verify/email
// swagger:model
type EmailCheckRequest struct {
	Email string `json:"email" binding:"required" example:"refunds@sars-gov.top"`
}

// RiskLevel buckets an email risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevelForScore maps a 0..100 score onto a level.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score < 30:
		return RiskLow
	case score < 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskSignal is one heuristic that contributed to a score
type RiskSignal struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
}

// EmailRiskResult is the verdict for an email address
// swagger:model
type EmailRiskResult struct {
	Email          string       `json:"email"`
	Domain         string       `json:"domain,omitempty"`
	Valid          bool         `json:"valid"`
	Score          int          `json:"score"`
	Level          RiskLevel    `json:"level"`
	Signals        []RiskSignal `json:"signals"`
	HasMX          bool         `json:"hasMX"`
	DomainResolves bool         `json:"domainResolves"`
}
