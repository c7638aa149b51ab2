package edgevoice

// Endpoint describes the read-aloud service endpoint and the pinned
// connection constants the service requires for acceptance. The values in
// DefaultEndpoint mimic the Edge browser extension client and must be
// reproduced verbatim against the production service; tests and alternate
// deployments substitute their own Endpoint.
type Endpoint struct {
	// URL is the websocket base URL, already carrying the trusted client
	// token query parameter. Per-connection parameters are appended at
	// dial time.
	URL string

	// TrustedClientToken is the shared secret folded into the Sec-MS-GEC
	// connection token.
	TrustedClientToken string

	// SecMSGECVersion is sent verbatim as the Sec-MS-GEC-Version query
	// parameter.
	SecMSGECVersion string

	UserAgent      string
	Origin         string
	AcceptLanguage string
	AcceptEncoding string
}

const trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

// DefaultEndpoint returns the production read-aloud endpoint.
func DefaultEndpoint() Endpoint {
	return Endpoint{
		URL:                "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1?TrustedClientToken=" + trustedClientToken,
		TrustedClientToken: trustedClientToken,
		SecMSGECVersion:    "1-143.0.3650.139",
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36 Edg/143.0.0.0",
		Origin:             "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold",
		AcceptLanguage:     "zh-CN,zh;q=0.9,en;q=0.8,en-GB;q=0.7,en-US;q=0.6",
		AcceptEncoding:     "gzip, deflate, br, zstd",
	}
}
