package submission

// Article URL handling
const (
	schemeHTTP       = "http"
	schemeHTTPS      = "https"
	defaultScheme    = "https://"
	trackingPrefix   = "utm_"
	canonicalRootURL = "/"
)

// Log messages
const (
	LogMsgContributionSubmitted = "Contribution submitted"
	LogMsgSubmissionRefused     = "Submission refused"

	LogErrFailedToStore  = "Failed to store contribution"
	LogErrFailedToLookup = "Failed to look up participant"
)
