package auth

import (
	"context"

	"github.com/anisan-cli/anisync/fault"
)

// Reauthorizer obtains a renewed authorization secret from outside the engine.
// It blocks until the secret is supplied, the request is declined (fault.ErrAuthRequired)
// or ctx is done.
type Reauthorizer interface {
	Reauthorize(ctx context.Context, provider, authURL string) (string, error)
}

// ReauthorizeFunc adapts a function to Reauthorizer.
type ReauthorizeFunc func(ctx context.Context, provider, authURL string) (string, error)

// Reauthorize calls f.
func (f ReauthorizeFunc) Reauthorize(ctx context.Context, provider, authURL string) (string, error) {
	return f(ctx, provider, authURL)
}

// Decline is a Reauthorizer that always refuses.
var Decline = ReauthorizeFunc(func(context.Context, string, string) (string, error) {
	return "", fault.ErrAuthRequired
})

// Request is one pending "need new secret" message.
type Request struct {
	// Provider is the id of the adapter asking.
	Provider string
	// URL is where the user obtains the new secret.
	URL string

	reply chan reply
}

type reply struct {
	secret string
	ok     bool
}

// Supply answers the request with a new secret.
func (r *Request) Supply(secret string) {
	r.send(reply{secret: secret, ok: secret != ""})
}

// Decline answers the request without a secret; the waiting operation fails with fault.ErrAuthRequired.
func (r *Request) Decline() {
	r.send(reply{})
}

func (r *Request) send(rep reply) {
	select {
	case r.reply <- rep:
	default:
	}
}

// Channel is a Reauthorizer that hands requests to whoever reads Requests.
type Channel struct {
	requests chan *Request
}

// NewChannel returns a Channel with an unbuffered request queue.
func NewChannel() *Channel {
	return &Channel{requests: make(chan *Request)}
}

// Requests delivers reauthorization requests to the caller.
func (c *Channel) Requests() <-chan *Request {
	return c.requests
}

// Reauthorize emits a request and waits for the answer.
func (c *Channel) Reauthorize(ctx context.Context, provider, authURL string) (string, error) {
	req := &Request{Provider: provider, URL: authURL, reply: make(chan reply, 1)}

	select {
	case c.requests <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case rep := <-req.reply:
		if !rep.ok {
			return "", fault.ErrAuthRequired
		}
		return rep.secret, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
