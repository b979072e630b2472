package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/vidly-api/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// ResponseCache stores successful public reads in Redis, one key space per
// resource, and drops a resource's keys after a successful write to it.
// A nil *ResponseCache, a disabled config or a missing client turn both
// middlewares into no-ops.
type ResponseCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
	log logrus.FieldLogger
}

func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client, log logrus.FieldLogger) *ResponseCache {
	return &ResponseCache{cfg: cfg, rdb: rdb, log: log}
}

func (rc *ResponseCache) enabled() bool {
	return rc != nil && rc.cfg.Enabled && rc.rdb != nil
}

// cacheKeyFrom builds prefix:resource:sha1(parts), the parts being chosen
// by the key strategy.
func cacheKeyFrom(cfg config.CacheConfig, resource string, c echo.Context) string {
	r := c.Request()
	method := r.Method
	route := r.URL.Path
	query := r.URL.RawQuery

	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", route}
	case "method_route":
		parts = []string{"method", method, "route", route}
	case "method_route_query":
		parts = []string{"method", method, "route", route, "q", query}
	default: // "route_query"
		parts = []string{"route", route, "q", query}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%s:%x", cfg.Prefix, resource, sum[:])
}

// skipOnReplay reports headers that describe the request which filled the
// cache entry rather than the response itself.
func skipOnReplay(header string) bool {
	switch http.CanonicalHeaderKey(header) {
	case "Content-Length", echo.HeaderXRequestID, echo.HeaderRetryAfter:
		return true
	}
	return strings.HasPrefix(http.CanonicalHeaderKey(header), "X-Ratelimit-")
}

func resourcePattern(prefix, resource string) string {
	return prefix + ":" + resource + ":*"
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// Read serves cached 200 responses for resource and stores misses.
func (rc *ResponseCache) Read(resource string) echo.MiddlewareFunc {
	if !rc.enabled() {
		return passThrough
	}
	ttl := rc.cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(rc.cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rc.cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key := cacheKeyFrom(rc.cfg, resource, c)

			if bs, err := rc.rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if skipOnReplay(k) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					_, _ = c.Response().Write(body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			// Truncated bodies are not worth replaying.
			if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
				return nil
			}
			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
			if err != nil {
				return nil
			}
			if err := rc.rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
				rc.log.WithError(err).WithField("key", key).Warn("cache store failed")
			}
			return nil
		}
	}
}

// Invalidate drops every cached read of the given resources once the
// wrapped write has answered below 400.
func (rc *ResponseCache) Invalidate(resources ...string) echo.MiddlewareFunc {
	if !rc.enabled() {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status >= http.StatusBadRequest {
				return nil
			}
			for _, res := range resources {
				if err := rc.purge(context.Background(), res); err != nil {
					rc.log.WithError(err).WithField("resource", res).Warn("cache invalidation failed")
				}
			}
			return nil
		}
	}
}

func (rc *ResponseCache) purge(ctx context.Context, resource string) error {
	var keys []string
	iter := rc.rdb.Scan(ctx, 0, resourcePattern(rc.cfg.Prefix, resource), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rc.rdb.Del(ctx, keys...).Err()
}
