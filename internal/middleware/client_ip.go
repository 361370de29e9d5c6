package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor decides where c.RealIP looks for the client address.
// Without trusted proxies only the socket peer counts and every forwarding
// header is ignored. With trusted proxies, X-Forwarded-For is walked from the
// right and the first hop outside the trusted ranges wins. Entries may be
// CIDR ranges or bare IPs; unparsable entries are skipped (config validation
// rejects them before the server starts).
func ClientIPExtractor(trustedProxies []string) echo.IPExtractor {
	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}

	trusted := 0
	for _, entry := range trustedProxies {
		ipNet, err := ParseTrustedProxy(entry)
		if err != nil {
			continue
		}
		options = append(options, echo.TrustIPRange(ipNet))
		trusted++
	}

	if trusted == 0 {
		return echo.ExtractIPDirect()
	}
	return echo.ExtractIPFromXFFHeader(options...)
}

// ParseTrustedProxy accepts a CIDR range or a single IP address.
func ParseTrustedProxy(entry string) (*net.IPNet, error) {
	entry = strings.TrimSpace(entry)
	if !strings.Contains(entry, "/") {
		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, &net.ParseError{Type: "IP address", Text: entry}
		}
		bits := 128
		if ip.To4() != nil {
			ip, bits = ip.To4(), 32
		}
		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}

	_, ipNet, err := net.ParseCIDR(entry)
	return ipNet, err
}
