// Package network provides the HTTP client shared by every request sent to DLive.
package network

import (
	"net/http"
	"time"

	"github.com/dlive-cli/dlive/constant"
)

// Options tune the transport chain built by New.
type Options struct {
	// RateLimit caps outgoing requests per second. Zero disables pacing.
	RateLimit float64
	// Fingerprint dials HTTPS connections with a Chrome TLS fingerprint.
	Fingerprint bool
	// UserAgent is set on requests that do not carry one.
	UserAgent string
}

// Client is the default client used when no options are configured.
var Client = New(Options{})

// New assembles a client whose transport decodes compressed bodies,
// paces requests and stamps a user agent on every request.
// Timeouts are left to the caller's context.
func New(options Options) *http.Client {
	var base http.RoundTripper = newTransport()
	if options.Fingerprint {
		base = newFingerprinted()
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = constant.UserAgent
	}

	var rt http.RoundTripper = &decompressor{next: base}
	rt = newLimiter(rt, options.RateLimit)
	rt = &userAgentSetter{next: rt, userAgent: userAgent}

	return &http.Client{Transport: rt}
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

type userAgentSetter struct {
	next      http.RoundTripper
	userAgent string
}

func (u *userAgentSetter) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", u.userAgent)
	return u.next.RoundTrip(req)
}
