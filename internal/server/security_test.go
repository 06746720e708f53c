package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func smallDetector(window time.Duration, maxRequests int) *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetector(DetectorConfig{
		Window:        window,
		MaxRequests:   maxRequests,
		AlertFailures: 2,
		MaxTrackedIPs: 16,
	})
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"
	handler := AuthMiddleware(apiKey, NewClientIPResolver(nil), smallDetector(time.Minute, 100))(okHandler)

	tests := []struct {
		name string
		key  string
		path string
		want int
	}{
		{"valid key", apiKey, "/api/v1/leaderboard", http.StatusOK},
		{"wrong key", "wrong-key", "/api/v1/leaderboard", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/contributions/pending", http.StatusUnauthorized},
		{"admin path needs key", "", "/api/v1/admin/leaderboard/verify", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"version is public", "", "/version", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"swagger is public", "", "/swagger/index.html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailuresPerIP(t *testing.T) {
	detector := smallDetector(time.Minute, 100)
	handler := AuthMiddleware("secret-key", NewClientIPResolver(nil), detector)(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contributions/1/decision", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set(HeaderAPIKey, "guess")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3, detector.FailedAuthCount("10.0.0.9"))
	assert.Zero(t, detector.FailedAuthCount("10.0.0.10"))
}

func TestSecurityLoggingMiddleware_RateLimitsPerIP(t *testing.T) {
	const limit = 5
	handler := SecurityLoggingMiddleware(NewClientIPResolver(nil), smallDetector(time.Minute, limit))(okHandler)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < limit; i++ {
		require.Equal(t, http.StatusOK, send("192.168.1.100:1234"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.100:1234"))
	assert.Equal(t, http.StatusOK, send("192.168.1.101:1234"), "other clients keep their own budget")
}

func TestSuspiciousActivityDetector_WindowExpires(t *testing.T) {
	detector := smallDetector(50*time.Millisecond, 2)

	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.False(t, detector.RecordRequest("1.2.3.4"))

	require.Eventually(t, func() bool { return detector.RecordRequest("1.2.3.4") },
		time.Second, 10*time.Millisecond, "a new window admits the client again")
}

func TestClientIPResolver(t *testing.T) {
	tests := []struct {
		name      string
		proxies   []string
		remote    string
		forwarded string
		want      string
	}{
		{"untrusted peer ignores header", nil, "10.0.0.1:443", "203.0.113.5", "10.0.0.1"},
		{"trusted address uses last hop", []string{"10.0.0.1"}, "10.0.0.1:443", "203.0.113.5, 198.51.100.7", "198.51.100.7"},
		{"trusted range", []string{"10.0.0.0/8"}, "10.20.30.40:443", "198.51.100.7", "198.51.100.7"},
		{"outside range", []string{"10.0.0.0/8"}, "172.16.0.1:443", "198.51.100.7", "172.16.0.1"},
		{"trusted without header", []string{"10.0.0.1"}, "10.0.0.1:443", "", "10.0.0.1"},
		{"invalid entries skipped", []string{"not-an-ip", " ", "10.0.0.1"}, "10.0.0.1:443", "198.51.100.7", "198.51.100.7"},
		{"ipv6 peer", []string{"::1"}, "[::1]:443", "2001:db8::7", "2001:db8::7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, NewClientIPResolver(tt.proxies).Resolve(req))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get("Referrer-Policy"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contributions", strings.NewReader("0123456789abcdef"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}
