package storage

import (
	"context"
	"io"
)

// PlaceholderIPFSHash is recorded until IPFS pinning is wired to a real node.
const PlaceholderIPFSHash = "NULL"

type IPFSClient interface {
	PinFile(ctx context.Context, body io.Reader) (string, error)
	UnpinFile(ctx context.Context, cid string) error
}

// noopIPFSClient stands in for a real pinning service; records created with
// it carry the placeholder hash.
type noopIPFSClient struct{}

func NewIPFSClient() IPFSClient {
	return &noopIPFSClient{}
}

func (c *noopIPFSClient) PinFile(ctx context.Context, body io.Reader) (string, error) {
	return PlaceholderIPFSHash, nil
}

func (c *noopIPFSClient) UnpinFile(ctx context.Context, cid string) error {
	return nil
}
