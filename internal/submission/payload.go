package submission

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// leadingScheme matches an RFC 3986 scheme followed by "://" at the start of the input only,
// so URLs nested in a query string do not count.
var leadingScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

var defaultPorts = map[string]string{schemeHTTP: "80", schemeHTTPS: "443"}

// validatedPayload is a payload accepted for a kind, plus its dedupe key
type validatedPayload struct {
	Payload string
	Key     string
}

// validatePayload checks raw against the rules for kind and derives the dedupe key.
// Article: absolute http(s) URL with a host; a missing scheme gets https.
// Photo: non-empty media identifier without whitespace.
func validatePayload(kind domain.ContributionKind, raw string) (validatedPayload, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return validatedPayload{}, fmt.Errorf("%w: empty %s payload", domain.ErrInvalidPayload, kind)
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxPayloadLength {
		return validatedPayload{}, fmt.Errorf("%w: payload exceeds %d characters", domain.ErrInvalidPayload, domain.MaxPayloadLength)
	}
	if strings.IndexFunc(trimmed, unicode.IsSpace) >= 0 {
		return validatedPayload{}, fmt.Errorf("%w: payload contains whitespace", domain.ErrInvalidPayload)
	}

	switch kind {
	case domain.KindArticle:
		return validateArticle(trimmed)
	case domain.KindPhoto:
		return validatedPayload{Payload: trimmed, Key: trimmed}, nil
	}
	return validatedPayload{}, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
}

func validateArticle(raw string) (validatedPayload, error) {
	if !leadingScheme.MatchString(raw) {
		raw = defaultScheme + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return validatedPayload{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != schemeHTTP && scheme != schemeHTTPS {
		return validatedPayload{}, fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidPayload, u.Scheme)
	}
	if u.Hostname() == "" {
		return validatedPayload{}, fmt.Errorf("%w: article URL has no host", domain.ErrInvalidPayload)
	}

	return validatedPayload{Payload: raw, Key: canonicalURL(u)}, nil
}

// canonicalURL lower-cases scheme and host, strips the scheme's default port and a
// trailing dot on the host, drops the fragment and any utm_* tracking parameters, and
// sorts what remains of the query
func canonicalURL(u *url.URL) string {
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = canonicalHost(c.Scheme, u)
	c.Fragment = ""
	c.RawFragment = ""
	c.User = nil
	if c.Path == "" {
		c.Path = canonicalRootURL
	}

	query := c.Query()
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
		}
	}
	for key := range query {
		sort.Strings(query[key])
	}
	// Encode sorts by key
	c.RawQuery = query.Encode()
	c.ForceQuery = false

	return c.String()
}

func canonicalHost(scheme string, u *url.URL) string {
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	port := u.Port()
	if port == defaultPorts[scheme] {
		port = ""
	}
	if port != "" {
		return net.JoinHostPort(host, port)
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

// normalizeCaption trims the optional caption and enforces its limit
func normalizeCaption(raw string) (string, error) {
	caption := strings.TrimSpace(raw)
	if utf8.RuneCountInString(caption) > domain.MaxCaptionLength {
		return "", fmt.Errorf("%w: caption exceeds %d characters", domain.ErrInvalidInput, domain.MaxCaptionLength)
	}
	return caption, nil
}
