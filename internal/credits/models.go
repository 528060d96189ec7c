package credits

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Carbon credit token statuses
const (
	StatusMinted      = "MINTED"
	StatusTransferred = "TRANSFERRED"
	StatusRetired     = "RETIRED"
)

// CarbonCreditNFT is one minted credit token backed by an approved
// verification report. (contractAddress, tokenId) is unique.
type CarbonCreditNFT struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Report          primitive.ObjectID `bson:"report" json:"report"`
	Project         primitive.ObjectID `bson:"project" json:"project"`
	TokenID         string             `bson:"tokenId" json:"tokenId"`
	ContractAddress string             `bson:"contractAddress" json:"contractAddress"`
	TransactionHash string             `bson:"transactionHash" json:"transactionHash"`
	Amount          float64            `bson:"amount" json:"amount"` // tonnes CO2e
	Owner           string             `bson:"owner" json:"owner"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MintCreditRequest is the POST /api/credits/mint payload.
type MintCreditRequest struct {
	Report    string `json:"report"`
	Recipient string `json:"recipient"`
}

// TransferCreditRequest is the POST /api/credits/:id/transfer payload.
type TransferCreditRequest struct {
	To string `json:"to"`
}
