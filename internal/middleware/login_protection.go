// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginProtection provides combined IP rate limiting and lockout after
// repeated failed login attempts.
type LoginProtection struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	attempts map[string]*loginAttempt

	ipRate      rate.Limit
	ipBurst     int
	maxFailed   int
	lockout     time.Duration
	window      time.Duration
	lastCleanup time.Time
}

// loginAttempt tracks failed login attempts for a client IP.
type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is requests per second per IP (default: 0.5 = 1 request per 2 seconds)
	IPRateLimit float64
	// IPBurst is the maximum burst size for IP rate limiting (default: 5)
	IPBurst int
	// MaxFailedAttempts before lockout (default: 5)
	MaxFailedAttempts int
	// LockoutDuration is the lockout time after too many failures (default: 15 minutes)
	LockoutDuration time.Duration
	// AttemptWindow is the time window for counting failed attempts (default: 15 minutes)
	AttemptWindow time.Duration
}

// DefaultLoginProtectionConfig returns sensible defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a new login protection instance.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = 0.5
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = 5
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = 15 * time.Minute
	}

	return &LoginProtection{
		limiters:    make(map[string]*rate.Limiter),
		attempts:    make(map[string]*loginAttempt),
		ipRate:      rate.Limit(cfg.IPRateLimit),
		ipBurst:     cfg.IPBurst,
		maxFailed:   cfg.MaxFailedAttempts,
		lockout:     cfg.LockoutDuration,
		window:      cfg.AttemptWindow,
		lastCleanup: time.Now(),
	}
}

// Allow reports whether a login attempt from the given IP may proceed.
func (lp *LoginProtection) Allow(ip string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.cleanupLocked()

	lim, ok := lp.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(lp.ipRate, lp.ipBurst)
		lp.limiters[ip] = lim
	}
	return lim.Allow()
}

// IsLocked reports whether the IP is currently locked out and for how long.
func (lp *LoginProtection) IsLocked(ip string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[ip]
	if !ok {
		return false, 0
	}
	if remaining := time.Until(a.lockedUntil); remaining > 0 {
		return true, remaining
	}
	return false, 0
}

// RecordFailure counts a failed attempt and locks the IP out once the
// threshold is reached within the window. Returns true when this failure
// triggered a lockout.
func (lp *LoginProtection) RecordFailure(ip string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := time.Now()
	a, ok := lp.attempts[ip]
	if !ok || now.Sub(a.firstFailed) > lp.window {
		a = &loginAttempt{firstFailed: now}
		lp.attempts[ip] = a
	}

	a.count++
	if a.count >= lp.maxFailed {
		a.lockedUntil = now.Add(lp.lockout)
		slog.Warn("login lockout triggered", "ip", ip, "failures", a.count, "until", a.lockedUntil)
		return true
	}
	return false
}

// RecordSuccess clears the failure history for an IP after a valid login.
func (lp *LoginProtection) RecordSuccess(ip string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	delete(lp.attempts, ip)
}

// Middleware rejects rate-limited or locked-out clients before the login
// handler runs.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			if locked, remaining := lp.IsLocked(ip); locked {
				writeThrottled(w, "Too many failed attempts, try again in "+remaining.Round(time.Second).String())
				return
			}
			if !lp.Allow(ip) {
				writeThrottled(w, "Too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client address without the port. RealIP middleware
// has already resolved proxy headers by the time this runs.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeThrottled(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// cleanupLocked drops stale limiters and expired attempt records. Called
// with lp.mu held, at most once per window.
func (lp *LoginProtection) cleanupLocked() {
	now := time.Now()
	if now.Sub(lp.lastCleanup) < lp.window {
		return
	}
	lp.lastCleanup = now

	for ip, a := range lp.attempts {
		if now.Sub(a.firstFailed) > lp.window && now.After(a.lockedUntil) {
			delete(lp.attempts, ip)
		}
	}
	if len(lp.limiters) > 10000 {
		lp.limiters = make(map[string]*rate.Limiter)
	}
}
