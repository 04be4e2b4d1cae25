package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "HTTP_ADDR", "CACHE_TTL_SECONDS", "CITY_INDEX_TTL_SECONDS", "REDIS_ADDR", "WARM_WORKERS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.DBDriver != "mysql" || c.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 5*time.Minute || c.CityIndexTTL != 0 || c.RedisAddr != "" || c.WarmWorkers != 8 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("CITY_INDEX_TTL_SECONDS", "60")
	t.Setenv("WARM_WORKERS", "not-a-number")
	t.Setenv("AVAILABILITY_BASE_URL", "http://booking.local")

	c := Load()
	if c.DBDriver != "pgx" || c.CityIndexTTL != time.Minute {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.WarmWorkers != 8 {
		t.Fatalf("bad integer should fall back to default, got %d", c.WarmWorkers)
	}
	if c.AvailabilityBase != "http://booking.local" {
		t.Fatalf("availability base: %q", c.AvailabilityBase)
	}
}
