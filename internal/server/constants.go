package server

import "time"

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
)

// HTTP header names
const (
	HeaderContentTypeOptions    = "X-Content-Type-Options"
	HeaderFrameOptions          = "X-Frame-Options"
	HeaderCacheControl          = "Cache-Control"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
)

// Security header values
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueNoStore    = "no-store"
	HeaderValueNoReferrer = "no-referrer"
	HeaderValueCSPNone    = "default-src 'none'; frame-ancestors 'none'"
)

// ReadHeaderTimeout bounds how long a client may take to send request headers.
// Request bodies are only read by the EventSub callback, which caps them itself.
const ReadHeaderTimeout = 5 * time.Second

// QuietPaths are served without request logging.
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
