package organizations

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization types
const (
	TypeNGO       = "NGO"
	TypePanchayat = "PANCHAYAT"
)

// Organization statuses
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Organization represents an NGO or Panchayat that must be approved before
// it can run projects.
type Organization struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the payload for creating an organization.
type RegisterRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
