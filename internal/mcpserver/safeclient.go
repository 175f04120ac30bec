package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	fetchDialTimeout = 10 * time.Second
	fetchTimeout     = 30 * time.Second
	maxRedirects     = 10
)

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

// publicAddrs resolves host and fails if any of its addresses is blocked.
func publicAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return nil, fmt.Errorf("blocked request to private address %s", host)
		}
		return []net.IPAddr{{IP: ip}}, nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no addresses found for host %s", host)
	}
	for _, a := range addrs {
		if isBlockedIP(a.IP) {
			return nil, fmt.Errorf("blocked request to private address %s (%s)", host, a.IP)
		}
	}
	return addrs, nil
}

// newSafeHTTPClient creates an HTTP client that refuses private, loopback and link-local
// destinations, including redirect targets. The MCP server uses it for every document
// URL an agent supplies.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: fetchDialTimeout}
	return &http.Client{
		Timeout: fetchTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				addrs, err := publicAddrs(ctx, host)
				if err != nil {
					return nil, err
				}
				// Dial the checked address, not the name, so a second lookup cannot differ.
				return dialer.DialContext(ctx, network, net.JoinHostPort(addrs[0].IP.String(), port))
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			_, err := publicAddrs(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
