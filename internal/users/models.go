package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin      = "ADMIN"
	RoleFieldAgent = "FIELD_AGENT"
	RoleVerifier   = "VERIFIER"
)

// PlaceholderUserID stands in for the submitter when no session is present.
// Authentication is issued but never enforced, so unauthenticated evidence
// submissions are attributed to this id.
const PlaceholderUserID = "000000000000000000000001"

// User represents a platform user tied to an organization.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"passwordHash" json:"-"`
	Organization  primitive.ObjectID `bson:"organization" json:"organization"`
	Role          string             `bson:"role" json:"role"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Organization  string `json:"organization"`
	Role          string `json:"role"`
	WalletAddress string `json:"walletAddress"`
}
