// Package network provides the HTTP clients shared by the provider adapters.
package network

import (
	"net/http"
	"time"

	"github.com/anisan-cli/anisync/constant"
	"github.com/anisan-cli/anisync/key"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// Client is an unthrottled client for calls outside any provider budget.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &limitedTransport{base: transport, limiter: rate.NewLimiter(rate.Inf, 0)},
}

// transport is shared so that every provider client reuses one connection pool.
var transport = newTransport()

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.MaxConnsPerHost = 20
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// Timeout is the configured per-request timeout.
func Timeout() time.Duration {
	if seconds := viper.GetInt(key.NetworkTimeout); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return time.Minute
}

// NewClient returns a client that issues at most limit requests per second with the given burst.
// Waiting for the limiter respects the request context.
func NewClient(limit rate.Limit, burst int) *http.Client {
	return &http.Client{
		Timeout: Timeout(),
		Transport: &limitedTransport{
			base:    transport,
			limiter: rate.NewLimiter(limit, burst),
		},
	}
}

// PerMinute converts a per-minute budget to a rate.Limit.
func PerMinute(n int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(n))
}

type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}

	return t.base.RoundTrip(req)
}
