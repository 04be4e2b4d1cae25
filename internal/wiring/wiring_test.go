package wiring

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/shared"
)

func TestCache_DisabledIsUntypedNil(t *testing.T) {
	c, closeFn, err := Cache(context.Background(), shared.Config{})
	require.NoError(t, err)
	assert.Nil(t, c)
	closeFn()
}

func TestCache_PingsRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, closeFn, err := Cache(context.Background(), shared.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer closeFn()
	require.NotNil(t, c)

	require.NoError(t, c.Set(context.Background(), "k", 1, 10))
	assert.True(t, mr.Exists("yoyo:k"))
}

func TestCache_UnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := Cache(context.Background(), shared.Config{RedisAddr: addr})
	assert.Error(t, err)
}

func TestAvailability(t *testing.T) {
	a, err := Availability(shared.Config{})
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = Availability(shared.Config{AvailabilityBase: "http://booking.local", AvailabilityRPS: 5})
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestLocator(t *testing.T) {
	_, ok := Locator(nil, shared.Config{}).(*app.ScanLocator)
	assert.True(t, ok)

	_, ok = Locator(nil, shared.Config{CityIndexTTL: time.Minute}).(*app.IndexedLocator)
	assert.True(t, ok)
}
