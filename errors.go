package edgevoice

import "github.com/ambiware-labs/edgevoice/internal/edge"

// Protocol failure sentinels, matched with errors.Is. Transport failures
// are returned wrapped as-is; the library performs no retries.
var (
	ErrMalformedFrame   = edge.ErrMalformedFrame
	ErrIdentityMismatch = edge.ErrIdentityMismatch
)
