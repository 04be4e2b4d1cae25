package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "yoyo_hotels/internal/adapters/redis"
	"yoyo_hotels/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	in := domain.Hotel{AddressID: 5, Name: "Harbour View", StarRating: 4}
	if err := c.Set(ctx, "hotel:5", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("test:hotel:5") {
		t.Fatalf("expected prefixed key in redis, keys=%v", mr.Keys())
	}

	var out domain.Hotel
	ok, err := c.Get(ctx, "hotel:5", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	if err := c.Del(ctx, "hotel:5"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "hotel:5", &out)
	if err != nil || ok {
		t.Fatalf("expected miss after del: ok=%v err=%v", ok, err)
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []int64{1, 2}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var out []int64
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected expired entry")
	}
}

func TestCache_GetReportsServerError(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	var out []int64
	if _, err := c.Get(context.Background(), "k", &out); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
