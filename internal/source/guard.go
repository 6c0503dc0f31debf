package source

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	nurl "net/url"
	"strings"
	"syscall"
	"time"
)

// ErrURLNotAllowed is returned for a page URL or dial target the server
// refuses to fetch.
var ErrURLNotAllowed = errors.New("source: url not allowed")

// Policy restricts which pages a caller may ask the server to fetch.
//
// Hosts holds exact host names or "*.example.org" patterns; the pattern
// also matches example.org itself. An empty Hosts allows no host at all.
// Unless AllowPrivate is set, the client from NewClient refuses to connect
// to loopback, private, link-local and unspecified addresses, whatever
// name resolved to them.
type Policy struct {
	Hosts        []string
	AllowPrivate bool
}

// Check parses raw and reports whether its scheme and host are allowed.
func (p Policy) Check(raw string) (*nurl.URL, error) {
	u, err := nurl.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", ErrURLNotAllowed, u.Scheme)
	}
	if u.User != nil {
		return nil, fmt.Errorf("%w: credentials in url", ErrURLNotAllowed)
	}
	host := strings.ToLower(u.Hostname())
	for _, pat := range p.Hosts {
		if hostMatches(strings.ToLower(strings.TrimSpace(pat)), host) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: host %q", ErrURLNotAllowed, host)
}

func hostMatches(pat, host string) bool {
	if pat == "" || host == "" {
		return false
	}
	if base, ok := strings.CutPrefix(pat, "*."); ok {
		return host == base || strings.HasSuffix(host, "."+base)
	}
	return host == pat
}

// blockedAddr reports whether a connection to ip must be refused.
func blockedAddr(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast()
}

// control runs after name resolution, so it sees the address actually dialed.
func (p Policy) control(_, address string, _ syscall.RawConn) error {
	if p.AllowPrivate {
		return nil
	}
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: dial %s", ErrURLNotAllowed, address)
	}
	if blockedAddr(ap.Addr()) {
		return fmt.Errorf("%w: dial %s", ErrURLNotAllowed, ap.Addr())
	}
	return nil
}

// NewClient returns an HTTP client that enforces p on every dial and on
// every redirect.
func NewClient(p Policy, timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: p.control}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = nil
	tr.DialContext = dialer.DialContext
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("stopped after 5 redirects")
			}
			_, err := p.Check(req.URL.String())
			return err
		},
	}
}
