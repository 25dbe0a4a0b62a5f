package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckKind identifies what was checked
type CheckKind string

const (
	CheckKindID    CheckKind = "id"
	CheckKindPhone CheckKind = "phone"
	CheckKindEmail CheckKind = "email"
)

// CheckRecord is one entry of the check history. The raw subject is never
// stored, only its hash and a masked form.
type CheckRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind          CheckKind          `bson:"kind" json:"kind"`
	SubjectHash   string             `bson:"subject_hash" json:"subject_hash"`
	SubjectMasked string             `bson:"subject_masked" json:"subject_masked"`
	Valid         bool               `bson:"valid" json:"valid"`
	Reason        string             `bson:"reason,omitempty" json:"reason,omitempty"`
	IPAddress     string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent     string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID     string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}

// HashSubject returns the hex SHA-256 of the normalised subject. Phone
// numbers should be passed in E.164 form so formatting variants collide.
func HashSubject(kind CheckKind, subject string) string {
	normalised := strings.ToLower(strings.TrimSpace(subject))
	sum := sha256.Sum256([]byte(string(kind) + ":" + normalised))
	return hex.EncodeToString(sum[:])
}

// CheckSummaryEntry counts checks of one kind
type CheckSummaryEntry struct {
	Kind    CheckKind `bson:"_id" json:"kind"`
	Total   int64     `bson:"total" json:"total"`
	Valid   int64     `bson:"valid" json:"valid"`
	Invalid int64     `bson:"invalid" json:"invalid"`
}

// CheckSummary aggregates checks since a point in time
// swagger:model
type CheckSummary struct {
	Since   time.Time           `json:"since"`
	Entries []CheckSummaryEntry `json:"entries"`
}
