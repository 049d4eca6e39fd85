package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"artha/internal/app/server/api/http/apierr"
)

const (
	sweepInterval = 5 * time.Minute
	idleTTL       = 10 * time.Minute

	MsgLimited = "Too many translation requests. Please try again later."
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client address.
type Limiter struct {
	limit rate.Limit
	burst int
	log   *slog.Logger
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

// New allows perSecond requests per client with bursts up to burst. A non-positive perSecond disables limiting.
func New(perSecond float64, burst int, log *slog.Logger) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limit:     rate.Limit(perSecond),
		burst:     burst,
		log:       log.With(slog.String("component", "rate_limiter")),
		now:       time.Now,
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
}

func (l *Limiter) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if l.limit <= 0 {
			next(ctx)
			return
		}

		key := clientKey(ctx.RemoteAddr())
		ok, wait := l.allow(key)
		if !ok {
			l.log.Warn("rate limit exceeded", slog.String("client", key), slog.String("path", ctx.URL().Path))
			ctx.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			if err := apierr.Write(ctx, http.StatusTooManyRequests, MsgLimited); err != nil {
				l.log.Error("failed to write rate limit error", slog.String("error", err.Error()))
			}
			return
		}

		next(ctx)
	}
}

func (l *Limiter) allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > sweepInterval {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, exists := l.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	r := c.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func clientKey(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
