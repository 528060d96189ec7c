package reports

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification report statuses
const (
	StatusPending  = "PENDING"
	StatusInReview = "IN_REVIEW"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// VerificationReport summarizes a project's monitoring evidence over a
// date range, subject to verifier approval or rejection.
type VerificationReport struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name                  string              `bson:"name" json:"name"`
	Project               primitive.ObjectID  `bson:"project" json:"project"`
	MonitoringStartPeriod time.Time           `bson:"monitoringStartPeriod" json:"monitoringStartPeriod"`
	MonitoringEndPeriod   time.Time           `bson:"monitoringEndPeriod" json:"monitoringEndPeriod"`
	Status                string              `bson:"status" json:"status"`
	Verifier              *primitive.ObjectID `bson:"verifier,omitempty" json:"verifier,omitempty"`
	VerificationTxHash    string              `bson:"verificationTxHash,omitempty" json:"verificationTxHash,omitempty"`
	VerifiedCarbonAmount  float64             `bson:"verifiedCarbonAmount" json:"verifiedCarbonAmount"` // tonnes CO2e
	Notes                 string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// RefStub is a populated reference reduced to id and display name.
type RefStub struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// PopulatedReport is a VerificationReport with project and verifier
// references expanded to name stubs for display.
type PopulatedReport struct {
	ID                    primitive.ObjectID `bson:"_id" json:"_id"`
	Name                  string             `bson:"name" json:"name"`
	Project               *RefStub           `bson:"project" json:"project"`
	MonitoringStartPeriod time.Time          `bson:"monitoringStartPeriod" json:"monitoringStartPeriod"`
	MonitoringEndPeriod   time.Time          `bson:"monitoringEndPeriod" json:"monitoringEndPeriod"`
	Status                string             `bson:"status" json:"status"`
	Verifier              *RefStub           `bson:"verifier,omitempty" json:"verifier,omitempty"`
	VerificationTxHash    string             `bson:"verificationTxHash,omitempty" json:"verificationTxHash,omitempty"`
	VerifiedCarbonAmount  float64            `bson:"verifiedCarbonAmount" json:"verifiedCarbonAmount"`
	Notes                 string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateReportRequest is the POST /api/report payload. The carbon amount is
// accepted as a number or numeric string and coerced.
type CreateReportRequest struct {
	Name                  string      `json:"name"`
	Project               string      `json:"project"`
	MonitoringStartPeriod string      `json:"monitoringStartPeriod"`
	MonitoringEndPeriod   string      `json:"monitoringEndPeriod"`
	Status                string      `json:"status"`
	VerifiedCarbonAmount  interface{} `json:"verifiedCarbonAmount"`
	Verifier              string      `json:"verifier"`
	VerificationTxHash    string      `json:"verificationTxHash"`
}

// UpdateReportRequest is the PUT /api/report/:id payload; nil fields are
// left untouched.
type UpdateReportRequest struct {
	Notes                *string     `json:"notes"`
	VerifiedCarbonAmount interface{} `json:"verifiedCarbonAmount"`
	Status               *string     `json:"status"`
	Verifier             *string     `json:"verifier"`
	VerificationTxHash   *string     `json:"verificationTxHash"`
}

// ReviewRequest carries the optional fields of a submit/approve/reject call.
type ReviewRequest struct {
	Notes                *string     `json:"notes"`
	VerifiedCarbonAmount interface{} `json:"verifiedCarbonAmount"`
	Verifier             *string     `json:"verifier"`
	VerificationTxHash   *string     `json:"verificationTxHash"`
}

// RangeResult is the monitoring-range query response.
type RangeResult struct {
	Records interface{} `json:"records"`
	Count   int         `json:"count"`
}

// NormalizeStatus maps UI status terms onto the canonical enum. It is
// permissive: anything unrecognized becomes PENDING rather than an error.
// Idempotent, since every output value maps back to itself.
func NormalizeStatus(input string) string {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "DRAFT", "PENDING":
		return StatusPending
	case "SUBMITTED", "IN_REVIEW":
		return StatusInReview
	case "VERIFIED", "APPROVED":
		return StatusApproved
	case "REJECTED":
		return StatusRejected
	default:
		return StatusPending
	}
}
