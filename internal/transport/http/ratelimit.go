package http

import (
	"context"
	"net"
	"net/http"
)

// Limiter decides whether a client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// allow consults every limiter in order. Limiter failures are logged and let the request through.
func (h *Handler) allow(ctx context.Context, limiters []Limiter, key string) bool {
	for _, l := range limiters {
		ok, err := l.Allow(ctx, key)
		if err != nil {
			h.log.Error().Err(err).Str("client", key).Msg("rate limiter unavailable")
			continue
		}
		if !ok {
			return false
		}
	}
	return true
}

func (h *Handler) withLimits(limiters []Limiter, next http.Handler) http.Handler {
	if len(limiters) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		if !h.allow(r.Context(), limiters, client) {
			h.log.Warn().Str("client", client).Str("path", r.URL.Path).Msg("rate limit exceeded")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
