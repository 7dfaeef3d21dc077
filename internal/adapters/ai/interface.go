package ai

import (
	"context"
	"time"
)

// Provider defines the contract for a grounded generation backend.
// Implementations issue a single generation call with search grounding
// enabled and pass citations through unmodified.
type Provider interface {
	Name() string

	// Execute runs one grounded generation request. It enforces the
	// provider timeout and performs no retries; retry policy belongs to
	// the caller.
	Execute(ctx context.Context, req GroundedRequest) (*ProviderResponse, error)
}

// GroundedRequest is a fully-composed generation request.
type GroundedRequest struct {
	Prompt string
}

// Citation is one grounding source reported by the provider, in the
// provider's relevance order. Citations are not deduplicated.
type Citation struct {
	URL   string
	Title string
}

// ProviderResponse carries the raw model text plus grounding metadata.
type ProviderResponse struct {
	Text      string
	Citations []Citation
	Elapsed   time.Duration
}
