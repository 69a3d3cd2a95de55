package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newCatalog(t *testing.T) (*Catalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCatalogReadThrough(t *testing.T) {
	c, mr := newCatalog(t)
	ctx := context.Background()

	var got []entry
	assert.False(t, c.Get(ctx, KeyProducts, &got))

	c.Set(ctx, KeyProducts, []entry{{ID: 1, Name: "Laptop"}})
	require.True(t, c.Get(ctx, KeyProducts, &got))
	assert.Equal(t, []entry{{ID: 1, Name: "Laptop"}}, got)
	assert.Equal(t, time.Minute, mr.TTL(KeyProducts))

	mr.FastForward(2 * time.Minute)
	assert.False(t, c.Get(ctx, KeyProducts, &got))
}

func TestCatalogDelete(t *testing.T) {
	c, mr := newCatalog(t)
	ctx := context.Background()

	c.Set(ctx, KeyProducts, []entry{})
	c.Set(ctx, ProductKey(4), entry{ID: 4})
	c.Delete(ctx, KeyProducts, ProductKey(4))

	assert.False(t, mr.Exists(KeyProducts))
	assert.False(t, mr.Exists("catalog:product:4"))
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	var got entry

	c.Set(context.Background(), KeyAccessories, entry{ID: 1})
	c.Delete(context.Background(), KeyAccessories)
	assert.False(t, c.Get(context.Background(), KeyAccessories, &got))
	assert.NoError(t, c.Close())
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Dial(context.Background(), "redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 5*time.Minute, c.ttl)

	_, err = Dial(context.Background(), "not a url", 0)
	assert.Error(t, err)
}
