package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

// AuthMiddleware requires the X-API-Key header on every non-public path
func AuthMiddleware(apiKey string, ips ClientIPResolver, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := ips.Resolve(r)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorConfig bounds the per-IP abuse counters
type DetectorConfig struct {
	Window        time.Duration
	MaxRequests   int
	AlertFailures int
	MaxTrackedIPs int
}

// DefaultDetectorConfig returns the production thresholds
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Window:        RateLimitWindow,
		MaxRequests:   RateLimitMaxRequests,
		AlertFailures: FailedAuthAlertThreshold,
		MaxTrackedIPs: MaxTrackedIPs,
	}
}

type ipWindow struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts failed logins and request volume per client IP.
// Each IP gets its own fixed window starting at its first request; the least recently
// seen IPs are evicted once MaxTrackedIPs is reached.
type SuspiciousActivityDetector struct {
	mu      sync.Mutex
	cfg     DetectorConfig
	windows *expirable.LRU[string, *ipWindow]
}

// NewSuspiciousActivityDetector creates a detector with the given limits
func NewSuspiciousActivityDetector(cfg DetectorConfig) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		cfg:     cfg,
		windows: expirable.NewLRU[string, *ipWindow](cfg.MaxTrackedIPs, nil, cfg.Window),
	}
}

// window returns the live window for ip. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) window(ip string) *ipWindow {
	if w, ok := s.windows.Get(ip); ok {
		return w
	}
	w := &ipWindow{}
	s.windows.Add(ip, w)
	return w
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	w := s.window(ip)
	w.failedAuth++
	failures := w.failedAuth
	s.mu.Unlock()

	if failures >= s.cfg.AlertFailures {
		logger.Warn(SecurityAlertFailedAuth, "ip", ip, "count", failures)
	}
}

// FailedAuthCount returns the failures recorded for ip in its current window
func (s *SuspiciousActivityDetector) FailedAuthCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.windows.Peek(ip); ok {
		return w.failedAuth
	}
	return 0
}

// RecordRequest counts a request and reports whether ip is still under the limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	w := s.window(ip)
	w.requests++
	count := w.requests
	s.mu.Unlock()

	if count <= s.cfg.MaxRequests {
		return true
	}
	if count%RateLimitLogEvery == 0 {
		logger.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

// SecurityLoggingMiddleware enforces the per-IP request limit
func SecurityLoggingMiddleware(ips ClientIPResolver, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(ips.Resolve(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIPResolver finds the client address, honoring X-Forwarded-For only
// when the direct peer is a trusted proxy
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver accepts single addresses and CIDR ranges. Unparseable entries are logged and skipped.
func NewClientIPResolver(trustedProxies []string) ClientIPResolver {
	var res ClientIPResolver
	for _, p := range trustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(p); err == nil {
			res.trusted = append(res.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(p)
		if err != nil {
			logger.Warn(LogMsgInvalidTrustedProxy, "value", p, "error", err)
			continue
		}
		res.trusted = append(res.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return res
}

func (c ClientIPResolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the client IP for r. With a trusted peer the rightmost
// X-Forwarded-For hop is used, since that is the one the proxy itself observed.
func (c ClientIPResolver) Resolve(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !c.isTrusted(remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
		return last
	}
	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
