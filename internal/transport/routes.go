package transport

import "net/http"

// RouteMiddleware is the set of middleware handlers attach to individual routes
type RouteMiddleware struct {
	// Auth rejects requests without a valid session
	Auth func(http.Handler) http.Handler
	// OptionalAuth attaches the session when present
	OptionalAuth func(http.Handler) http.Handler
	// Writes guards product mutations, Auth first
	Writes []func(http.Handler) http.Handler
	// RateLimit throttles toggle and generation endpoints
	RateLimit func(http.Handler) http.Handler
}

func passthrough(next http.Handler) http.Handler { return next }

func (m RouteMiddleware) rateLimit() func(http.Handler) http.Handler {
	if m.RateLimit == nil {
		return passthrough
	}
	return m.RateLimit
}

func (m RouteMiddleware) writes() []func(http.Handler) http.Handler {
	if len(m.Writes) == 0 {
		return []func(http.Handler) http.Handler{m.Auth}
	}
	return m.Writes
}
