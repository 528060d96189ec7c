package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// MintRequest carries everything needed to mint one carbon credit token.
type MintRequest struct {
	ReportID  string  `json:"report_id"`
	ProjectID string  `json:"project_id"`
	Amount    float64 `json:"amount"` // tonnes CO2e
	Recipient string  `json:"recipient"`
}

// MintResult is the on-chain outcome recorded against the credit.
type MintResult struct {
	TokenID         string    `json:"token_id"`
	ContractAddress string    `json:"contract_address"`
	TransactionHash string    `json:"transaction_hash"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// Client mints carbon credit tokens for approved verification reports.
// The contract deployment itself lives outside this service.
type Client interface {
	MintCreditToken(ctx context.Context, req *MintRequest) (*MintResult, error)
}

// offChainClient issues deterministic token records without touching a
// network; the real contract client plugs in behind the same interface.
type offChainClient struct {
	contractAddress string
	nextToken       atomic.Int64
}

func NewOffChainClient(contractAddress string) Client {
	if contractAddress == "" {
		contractAddress = "0x0000000000000000000000000000000000000000"
	}
	return &offChainClient{contractAddress: contractAddress}
}

func (c *offChainClient) MintCreditToken(ctx context.Context, req *MintRequest) (*MintResult, error) {
	now := time.Now()
	seq := c.nextToken.Add(1)

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d", req.ReportID, req.Recipient, seq, now.UnixNano())))
	return &MintResult{
		// timestamp keeps ids unique across process restarts
		TokenID:         fmt.Sprintf("%d-%d", now.UnixMilli(), seq),
		ContractAddress: c.contractAddress,
		TransactionHash: "0x" + hex.EncodeToString(sum[:]),
		SubmittedAt:     now,
	}, nil
}
