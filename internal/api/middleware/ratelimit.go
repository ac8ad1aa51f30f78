package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/product-extractor/internal/metrics"
)

// RateLimit returns Echo middleware that applies one shared token bucket to
// every request whose path starts with prefix. Requests over the limit get a
// 429 with a Retry-After hint.
func RateLimit(limiter *rate.Limiter, prefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().URL.Path, prefix) {
				return next(c)
			}

			if !limiter.Allow() {
				metrics.RateLimitedTotal.Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limiter)))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}

// retryAfterSeconds is the whole-second wait until the next token.
func retryAfterSeconds(limiter *rate.Limiter) int {
	limit := float64(limiter.Limit())
	if limit <= 0 {
		return 1
	}
	secs := int(1 / limit)
	if secs < 1 {
		return 1
	}
	return secs
}
