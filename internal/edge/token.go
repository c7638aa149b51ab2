package edge

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"
)

const (
	// Seconds between the Windows NT epoch (1601-01-01) and the Unix epoch.
	ntEpochOffsetSeconds = 11644473600
	// The token is valid for any request issued inside the same bucket, so
	// moderate clock skew between client and service is tolerated.
	tokenWindowSeconds = 300
	ticksPerSecond     = 10_000_000
)

// SecMSGEC computes the Sec-MS-GEC connection token: the wall clock shifted
// to the NT epoch, floored to a 5-minute bucket, expressed in 100 ns ticks,
// concatenated with the trusted client token and hashed with SHA-256.
// The result is 64 uppercase hex characters.
func SecMSGEC(trustedClientToken string, now time.Time) string {
	seconds := now.Unix() + ntEpochOffsetSeconds
	seconds -= seconds % tokenWindowSeconds
	ticks := seconds * ticksPerSecond
	sum := sha256.Sum256([]byte(strconv.FormatInt(ticks, 10) + trustedClientToken))
	return fmt.Sprintf("%X", sum[:])
}
