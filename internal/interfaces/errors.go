package interfaces

import "errors"

// Source errors. Adapters wrap provider failures with these so services can
// decide how to degrade.
var (
	ErrNoData        = errors.New("provider returned no data")
	ErrRateLimited   = errors.New("provider rate limit exceeded")
	ErrMissingAPIKey = errors.New("provider API key not configured")
	ErrUnknownTicker = errors.New("ticker not recognised by provider")
)
