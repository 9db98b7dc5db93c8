package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter applies per-minute request limits. Anonymous traffic is keyed
// by client IP, authenticated traffic by user, and the public contact form
// has its own stricter per-IP budget.
type RateLimiter struct {
	enabled bool
	logger  *zap.Logger
	bypass  bypassList

	byIP    func(http.Handler) http.Handler
	byUser  func(http.Handler) http.Handler
	contact func(http.Handler) http.Handler
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		enabled: cfg.Enabled,
		logger:  logger,
		bypass:  newBypassList(cfg.WhitelistIPs, cfg.WhitelistPaths),
	}

	rl.byIP = rl.perMinute(cfg.RequestsPerMinute, keyByIP)
	rl.byUser = rl.perMinute(cfg.RequestsPerMinuteAuth, keyByUser)
	rl.contact = rl.perMinute(cfg.ContactRequestsPerMinute, keyByIP)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Int("contact_requests_per_minute", cfg.ContactRequestsPerMinute),
	)

	return rl
}

func (rl *RateLimiter) perMinute(limit int, key httprate.KeyFunc) func(http.Handler) http.Handler {
	return httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(rl.tooManyRequests),
	)
}

// Limit is mounted behind authentication and keys on the caller
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}
	return rl.unlessBypassed(next, rl.byUser(next))
}

// LimitByIP is the global limit applied before authentication
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}
	return rl.unlessBypassed(next, rl.byIP(next))
}

// LimitContact guards the public contact form. Whitelisted IPs and paths
// do not apply.
func (rl *RateLimiter) LimitContact(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}
	return rl.contact(next)
}

func (rl *RateLimiter) unlessBypassed(next, limited http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.bypass.matches(r.URL.Path, clientIP(r)) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", clientIP(r)),
	}
	if user, ok := auth.FromContext(r.Context()); ok {
		fields = append(fields, zap.Stringer("user_id", user.UserID))
	}
	rl.logger.Warn("rate limit exceeded", fields...)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeRateLimited,
		Title:  http.StatusText(http.StatusTooManyRequests),
		Status: http.StatusTooManyRequests,
		Detail: "Too many requests. Please try again later.",
	})
}

func keyByIP(r *http.Request) (string, error) {
	return "ip:" + clientIP(r), nil
}

// keyByUser falls back to the client IP when no user is on the context
func keyByUser(r *http.Request) (string, error) {
	if user, ok := auth.FromContext(r.Context()); ok && user != nil {
		return "user:" + user.UserID.String(), nil
	}
	return keyByIP(r)
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// bypassList holds whitelisted client IPs and paths. A path ending in "/*"
// matches everything below it.
type bypassList struct {
	ips      map[string]struct{}
	paths    map[string]struct{}
	prefixes []string
}

func newBypassList(ips, paths []string) bypassList {
	b := bypassList{
		ips:   make(map[string]struct{}, len(ips)),
		paths: make(map[string]struct{}, len(paths)),
	}
	for _, ip := range ips {
		b.ips[ip] = struct{}{}
	}
	for _, p := range paths {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			b.prefixes = append(b.prefixes, prefix)
			continue
		}
		b.paths[p] = struct{}{}
	}
	return b
}

func (b bypassList) matches(path, ip string) bool {
	if _, ok := b.ips[ip]; ok {
		return true
	}
	if _, ok := b.paths[path]; ok {
		return true
	}
	for _, prefix := range b.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
