package miner_http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter throttles report generation per client IP. Limiters live in
// an expirable LRU so idle clients age out instead of growing the table
// forever. The limiter is constructed explicitly and injected into the
// HTTP layer; nothing below the handlers knows it exists.
type RateLimiter struct {
	limiters   *expirable.LRU[string, *rate.Limiter]
	limit      rate.Limit
	burst      int
	retryAfter time.Duration
}

// NewRateLimiter allows roughly requests per window with bursts up to the
// full window budget, tracking at most maxClients IPs at a time.
func NewRateLimiter(requests int, window time.Duration, maxClients int) *RateLimiter {
	every := window / time.Duration(requests)
	return &RateLimiter{
		limiters:   expirable.NewLRU[string, *rate.Limiter](maxClients, nil, window),
		limit:      rate.Every(every),
		burst:      requests,
		retryAfter: every,
	}
}

// Allow reports whether the client may proceed.
func (rl *RateLimiter) Allow(clientIP string) bool {
	limiter, ok := rl.limiters.Get(clientIP)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters.Add(clientIP, limiter)
	}
	return limiter.Allow()
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After",
					fmt.Sprintf("%d", int(rl.retryAfter.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
			}
			return next(c)
		}
	}
}
