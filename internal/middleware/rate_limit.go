package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/trip-booking/internal/errs"
	"github.com/deppfellow/trip-booking/internal/server"
)

// RateLimitMiddleware throttles requests per client IP.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns echo's rate limiter backed by Redis when configured and by an
// in-process token bucket otherwise. It passes everything through when
// rate limiting is disabled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	window := time.Duration(cfg.Window) * time.Second

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.newStore(cfg.Requests, window),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")

			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(cfg.Window))
			return errs.NewTooManyRequestsError(window.String())
		},
	})
}

func (r *RateLimitMiddleware) newStore(requests int, window time.Duration) middleware.RateLimiterStore {
	if r.server.Redis != nil {
		return NewRedisRateLimiterStore(r.server.Redis, requests, window, r.server.Logger)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requests) / window.Seconds()),
		Burst:     requests,
		ExpiresIn: 3 * window,
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore is a fixed window counter shared by every instance.
//
// Keys are ratelimit:<identifier>:<window number> and expire with the window.
// Redis failures allow the request.
type RedisRateLimiterStore struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	timeout  time.Duration
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, requests int, window time.Duration, logger *zerolog.Logger) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client:   client,
		requests: int64(requests),
		window:   window,
		timeout:  500 * time.Millisecond,
		logger:   logger,
		now:      time.Now,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	slot := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("ratelimit:%s:%d", identifier, slot)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, s.window)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("rate limiter store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= s.requests, nil
}
