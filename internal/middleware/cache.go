package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/practice-room-reservation/internal/config"
)

// Cache is a Redis-backed response cache for the date-scoped read
// endpoints.  Keys are deterministic (prefix:path:date) rather than
// hashed so a booking or cancellation can delete exactly the entries
// for its date.  With a nil Redis client every method is a no-op.
type Cache struct {
	cfg config.CacheConfig
	rdb *redis.Client

	// paths that get cached; also the set swept by InvalidateDate.
	paths []string
}

// NewCache builds a Cache over the given routes.  rdb may be nil.
func NewCache(cfg config.CacheConfig, rdb *redis.Client, paths ...string) *Cache {
	return &Cache{cfg: cfg, rdb: rdb, paths: paths}
}

func (cc *Cache) enabled() bool {
	return cc != nil && cc.cfg.Enabled && cc.rdb != nil
}

func (cc *Cache) key(path, date string) string {
	return cc.cfg.Prefix + ":" + path + ":" + date
}

// cacheableQuery reports whether a query string selects a whole date
// view: exactly one date parameter and nothing else.  Requests carrying
// extra parameters (the timetable's room/hour detail-bar selectors)
// produce responses the date key cannot distinguish, so they bypass the
// cache entirely.
func cacheableQuery(q url.Values) (string, bool) {
	date := q.Get("date")
	if date == "" || len(q) != 1 {
		return "", false
	}
	return date, true
}

// InvalidateDate drops every cached read for the given date.  Called
// after each successful write so readers never see a stale timetable
// longer than one in-flight request.
func (cc *Cache) InvalidateDate(ctx context.Context, date string) {
	if !cc.enabled() || date == "" {
		return
	}
	keys := make([]string, 0, len(cc.paths))
	for _, p := range cc.paths {
		keys = append(keys, cc.key(p, date))
	}
	_ = cc.rdb.Del(ctx, keys...).Err()
}

// captureWriter captures the response body and status while forwarding
// both to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware serves cache hits for GET requests on the configured paths
// and stores fresh 200 responses on miss.  Only requests whose query is
// exactly a date parameter participate; everything else passes straight
// through.
func (cc *Cache) Middleware() echo.MiddlewareFunc {
	if !cc.enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cc.cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	cached := make(map[string]bool, len(cc.paths))
	for _, p := range cc.paths {
		cached[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			date, ok := cacheableQuery(c.QueryParams())
			if c.Request().Method != http.MethodGet || !cached[c.Path()] || !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cc.key(c.Path(), date)

			if body, err := cc.rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				_ = cc.rdb.SetEx(context.Background(), key, cw.buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}
