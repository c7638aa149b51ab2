package edge

import "errors"

// Frame validation failures are fatal to the session: the loop does not try
// to resynchronize with a service whose framing it no longer understands.
var (
	// ErrMalformedFrame reports a text frame without a header/body separator
	// or a binary frame whose declared header length exceeds the message.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrIdentityMismatch reports an audio or turn.end frame whose
	// X-RequestId header is missing or differs from the session's request
	// id. Such frames are a protocol integrity violation, not noise to
	// skip: accepting them could splice audio from another request.
	ErrIdentityMismatch = errors.New("request identity mismatch")
)
