package validate

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Prober performs a HEAD-equivalent accessibility check against a format
// URL and reports the HTTP status. The engine depends only on this contract,
// never on transport internals.
type Prober interface {
	Probe(ctx context.Context, rawURL string) (status int, err error)
}

// HTTPProber probes over net/http, optionally routed through a proxy.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber builds a prober. A non-empty proxyURL routes probes through
// that proxy; an unparseable proxy falls back to the direct transport.
func NewHTTPProber(proxyURL string) *HTTPProber {
	return &HTTPProber{client: newHTTPClient(proxyURL)}
}

// Probe issues a HEAD request and returns the response status code.
func (p *HTTPProber) Probe(ctx context.Context, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func newHTTPClient(proxyURL string) *http.Client {
	if strings.TrimSpace(proxyURL) == "" {
		return http.DefaultClient
	}
	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return http.DefaultClient
	}
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultClient
	}
	transport := baseTransport.Clone()
	transport.Proxy = http.ProxyURL(parsed)
	return &http.Client{Transport: transport}
}
