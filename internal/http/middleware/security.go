package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS emits Strict-Transport-Security on HTTPS requests only.
	// Enable it only when traffic is HTTPS end to end.
	EnableHSTS bool
	// HSTSMaxAge defaults to 180 days when <= 0.
	HSTSMaxAge time.Duration
	// NoStore adds Cache-Control: no-store plus the legacy Pragma/Expires.
	NoStore bool
	// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool
	// Expose lists response headers browser clients may read. Defaults to
	// X-Request-ID.
	Expose []string
}

// SecurityHeaders sets the baseline hardening headers for a JSON API
// (nosniff, DENY framing, no-referrer) plus the optional groups above, and
// merges Expose into Access-Control-Expose-Headers without duplicates.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"
	expose := opt.Expose
	if len(expose) == 0 {
		expose = []string{requestIDHeader}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		const hdr = "Access-Control-Expose-Headers"
		h.Set(hdr, mergeHeaderList(h.Get(hdr), expose))

		c.Next()
	}
}

// isHTTPS reports TLS either on the connection or as reported by a proxy via
// X-Forwarded-Proto.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// mergeHeaderList appends the names missing from the comma-separated list
// cur. Header names compare case-insensitively.
func mergeHeaderList(cur string, names []string) string {
	have := map[string]struct{}{}
	for _, n := range strings.Split(cur, ",") {
		if n = strings.TrimSpace(n); n != "" {
			have[strings.ToLower(n)] = struct{}{}
		}
	}
	for _, n := range names {
		if _, ok := have[strings.ToLower(n)]; ok {
			continue
		}
		have[strings.ToLower(n)] = struct{}{}
		if cur == "" {
			cur = n
		} else {
			cur += ", " + n
		}
	}
	return cur
}
