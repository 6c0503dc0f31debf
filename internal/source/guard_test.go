package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Check(t *testing.T) {
	t.Parallel()

	p := Policy{Hosts: []string{"*.wikipedia.org", "example.com"}}
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://en.wikipedia.org/wiki/Honey_bee", true},
		{"http://wikipedia.org/", true},
		{"https://EN.Wikipedia.org/wiki/X", true},
		{"https://example.com/a", true},
		{"https://www.example.com/a", false},
		{"https://evilwikipedia.org/", false},
		{"https://wikipedia.org.evil.com/", false},
		{"http://127.0.0.1/x", false},
		{"http://169.254.169.254/latest/meta-data", false},
		{"http://localhost:8080/", false},
		{"file:///etc/passwd", false},
		{"ftp://en.wikipedia.org/", false},
		{"https://user:pw@en.wikipedia.org/", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			_, err := p.Check(tt.url)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrURLNotAllowed)
			}
		})
	}

	_, err := Policy{}.Check("https://en.wikipedia.org/")
	assert.ErrorIs(t, err, ErrURLNotAllowed, "no hosts configured allows nothing")
}

func TestBlockedAddr(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"127.0.0.1", "10.1.2.3", "192.168.0.1", "172.16.5.4", "169.254.169.254", "0.0.0.0", "::1", "fe80::1", "fc00::1", "::ffff:127.0.0.1"} {
		assert.True(t, blockedAddr(netip.MustParseAddr(s)), s)
	}
	for _, s := range []string{"208.80.154.224", "2620:0:861:ed1a::1"} {
		assert.False(t, blockedAddr(netip.MustParseAddr(s)), s)
	}
}

func TestNewClient_RefusesPrivateAddresses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	// The host passes the allowlist; the dial is what gets refused.
	p := Policy{Hosts: []string{"127.0.0.1"}}
	_, err := Readability{URL: srv.URL + "/wiki/Honey_bee", Client: NewClient(p, 5*time.Second), Policy: &p}.Next(context.Background())
	assert.ErrorIs(t, err, ErrURLNotAllowed)

	p.AllowPrivate = true
	a, err := Readability{URL: srv.URL + "/wiki/Honey_bee", Client: NewClient(p, 5*time.Second), Policy: &p}.Next(context.Background())
	require.NoError(t, err)
	assert.Contains(t, a.Text, "eusocial flying insect")
}

func TestNewClient_ChecksRedirects(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost:1/elsewhere", http.StatusFound)
	}))
	t.Cleanup(srv.Close)

	p := Policy{Hosts: []string{"127.0.0.1"}, AllowPrivate: true}
	_, err := Readability{URL: srv.URL + "/start", Client: NewClient(p, 5*time.Second), Policy: &p}.Next(context.Background())
	assert.ErrorIs(t, err, ErrURLNotAllowed)
}
