package handlers

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are consulted in order before the connection address.
var clientIPHeaders = []string{
	"X-Forwarded-For",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"Forwarded-For",
	"Forwarded",
	"Client-IP",
	"X-Real-IP",
}

var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("::ffff:0:0/96"),
}

// ClientIP returns the first public address found in the proxy headers or the
// connection address. When none is public it falls back to the raw connection host.
func ClientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)

	for _, header := range clientIPHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if ip, ok := firstPublicIP(value); ok {
			return ip
		}
	}

	if ip, ok := firstPublicIP(remote); ok {
		return ip
	}

	if remote != "" {
		return remote
	}
	return "0.0.0.0"
}

func firstPublicIP(list string) (string, bool) {
	for _, part := range strings.Split(list, ",") {
		candidate := strings.TrimSpace(part)
		if isPublicIP(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isPublicIP(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return false
	}

	if addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
		return false
	}

	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.TrimSpace(remoteAddr)
	}
	return host
}
