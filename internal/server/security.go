package server

import "net/http"

// SecurityHeadersMiddleware sets headers for machine-facing responses. Nothing served here is meant for a browser.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderCacheControl, HeaderValueNoStore)
			h.Set(HeaderReferrerPolicy, HeaderValueNoReferrer)
			h.Set(HeaderContentSecurityPolicy, HeaderValueCSPNone)

			next.ServeHTTP(w, r)
		})
	}
}
