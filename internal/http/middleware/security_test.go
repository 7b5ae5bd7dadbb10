package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func serveSecurity(opt SecurityOptions, prep func(*http.Request), pre gin.HandlerFunc) http.Header {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/dogs/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/dogs/", nil)
	if prep != nil {
		prep(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_Groups(t *testing.T) {
	viaTLS := func(r *http.Request) { r.TLS = &tls.ConnectionState{} }
	viaProxy := func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS") }

	cases := []struct {
		name string
		opt  SecurityOptions
		prep func(*http.Request)
		want map[string]string // "" means absent
	}{
		{
			name: "baseline only",
			want: map[string]string{
				"X-Content-Type-Options":    "nosniff",
				"X-Frame-Options":           "DENY",
				"Referrer-Policy":           "no-referrer",
				"Permissions-Policy":        "",
				"Cache-Control":             "",
				"Strict-Transport-Security": "",
			},
		},
		{
			name: "policy and no-store",
			opt:  SecurityOptions{EnablePolicy: true, NoStore: true},
			want: map[string]string{
				"X-Permitted-Cross-Domain-Policies": "none",
				"Cache-Control":                     "no-store",
				"Pragma":                            "no-cache",
				"Expires":                           "0",
			},
		},
		{
			name: "hsts over plain http is withheld",
			opt:  SecurityOptions{EnableHSTS: true},
			want: map[string]string{"Strict-Transport-Security": ""},
		},
		{
			name: "hsts over tls with custom max age",
			opt:  SecurityOptions{EnableHSTS: true, HSTSMaxAge: 24 * time.Hour},
			prep: viaTLS,
			want: map[string]string{"Strict-Transport-Security": "max-age=86400; includeSubDomains; preload"},
		},
		{
			name: "hsts behind proxy with default max age",
			opt:  SecurityOptions{EnableHSTS: true},
			prep: viaProxy,
			want: map[string]string{"Strict-Transport-Security": "max-age=15552000; includeSubDomains; preload"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := serveSecurity(tc.opt, tc.prep, nil)
			for k, v := range tc.want {
				if got := h.Get(k); got != v {
					t.Errorf("%s = %q; want %q", k, got, v)
				}
			}
		})
	}
}

func TestSecurityHeaders_ExposeMerge(t *testing.T) {
	preset := func(v string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if v != "" {
				c.Header("Access-Control-Expose-Headers", v)
			}
			c.Next()
		}
	}
	cases := []struct {
		name   string
		expose []string
		preset string
		want   string
	}{
		{"default", nil, "", "X-Request-ID"},
		{"custom list", []string{"X-Request-ID", "ETag", "Idempotency-Replayed"}, "", "X-Request-ID, ETag, Idempotency-Replayed"},
		{"append to existing", nil, "Foo", "Foo, X-Request-ID"},
		{"canonicalized duplicate from cors", []string{"X-Request-ID", "ETag"}, "X-Request-Id,Etag", "X-Request-Id,Etag"},
		{"partial overlap", []string{"ETag", "Idempotency-Replayed"}, "etag", "etag, Idempotency-Replayed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := serveSecurity(SecurityOptions{Expose: tc.expose}, nil, preset(tc.preset))
			if got := h.Get("Access-Control-Expose-Headers"); got != tc.want {
				t.Fatalf("expose = %q; want %q", got, tc.want)
			}
		})
	}
}

func Test_isHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")

	for _, tc := range []struct {
		name string
		req  *http.Request
		want bool
	}{{"plain", plain, false}, {"tls", tlsReq, true}, {"proxy", proxied, true}} {
		if got := isHTTPS(tc.req); got != tc.want {
			t.Errorf("%s: isHTTPS = %v", tc.name, got)
		}
	}
}
