// Package availability talks to the external booking service that knows
// which room types still have inventory on a given date.
package availability

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/domain"
)

const service = "booking"

var (
	ErrUnauthorized = errors.New("booking: unauthorized")
	ErrForbidden    = errors.New("booking: forbidden")
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("booking base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 5 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// Available reports whether the booking service still has inventory for
// room on date. Without a date there is nothing to check and it returns
// true. An unknown hotel or room (404) is reported as unavailable.
func (c *Client) Available(ctx context.Context, hotelID int64, room domain.RoomType, date string, adults int) (bool, error) {
	if date == "" {
		return true, nil
	}
	q := url.Values{}
	q.Set("date", date)
	q.Set("adults", strconv.Itoa(adults))
	u := fmt.Sprintf("%s/hotels/%d/rooms/%s/availability?%s",
		c.base, hotelID, url.PathEscape(room.Code), q.Encode())

	var out availabilityResponse
	found, err := c.get(ctx, u, &out)
	if err != nil {
		return false, err
	}
	return found && out.Available, nil
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
// It reports false without error on 404.
func (c *Client) get(ctx context.Context, url string, out any) (bool, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return false, err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "yoyo-hotels/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(service, "availability", 0, time.Since(start))
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, lastErr
		}
		observability.ObserveExternal(service, "availability", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err == nil, err

		case http.StatusNotFound:
			resp.Body.Close()
			return false, nil

		case http.StatusUnauthorized:
			resp.Body.Close()
			return false, ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return false, ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("booking: remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return false, fmt.Errorf("booking: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return false, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
