package network

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

type limiter struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

// newLimiter paces requests to perSecond with a burst of one second's worth.
// A non-positive rate returns next unchanged.
func newLimiter(next http.RoundTripper, perSecond float64) http.RoundTripper {
	if perSecond <= 0 {
		return next
	}

	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}

	return &limiter{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (l *limiter) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := l.limiter.Wait(ctx); err != nil {
		// Wait fails early when the deadline would pass before a token frees up.
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, err
	}

	return l.next.RoundTrip(req)
}
