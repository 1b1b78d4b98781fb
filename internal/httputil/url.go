// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters stripped during canonicalization.
// They vary per click without changing the page content.
var trackingParams = map[string]bool{
	"utm_source": true, "utm_medium": true, "utm_campaign": true,
	"utm_term": true, "utm_content": true, "fbclid": true, "gclid": true,
	"ref": true, "source": true,
}

// Canonicalize normalizes a URL for use as a dedup and cache key: lowercase
// scheme and host, default ports and fragments stripped, tracking query
// parameters removed, trailing slash trimmed. Unparseable input is returned
// unchanged so callers can still key on it.
func Canonicalize(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if u.RawQuery != "" {
		q := u.Query()
		for param := range q {
			if trackingParams[strings.ToLower(param)] {
				q.Del(param)
			}
		}
		u.RawQuery = q.Encode()
	}

	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// Domain returns the lowercased host of a URL without a www. prefix, or ""
// when the URL cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
