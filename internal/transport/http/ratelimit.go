package http

import "golang.org/x/time/rate"

// intentLimiter is a per-connection token bucket over inbound intents.
type intentLimiter struct {
	limiter *rate.Limiter
}

// newIntentLimiter returns a limiter allowing perSecond intents with the given
// burst. A non-positive rate disables limiting.
func newIntentLimiter(perSecond float64, burst int) *intentLimiter {
	if perSecond <= 0 {
		return &intentLimiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &intentLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *intentLimiter) allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}
