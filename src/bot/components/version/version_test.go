package version

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries map[string]string
	setTTL  time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.entries[key] = value
	c.setTTL = ttl
	return nil
}

type fakeCreds struct {
	creds *nameless.Credentials
}

func (f fakeCreds) Credentials(guildID string) (*nameless.Credentials, error) {
	return f.creds, nil
}

func TestResolveCacheHit(t *testing.T) {
	cache := newFakeCache()
	cache.entries["suggestionapi:guild1:version"] = "213"

	// No credentials configured: a cache hit must not probe.
	svc := NewService(cache, fakeCreds{}, nameless.NewRegistry(http.DefaultClient))

	v, err := svc.Resolve(context.Background(), "guild1")
	require.NoError(t, err)
	assert.Equal(t, 213, v)
}

func TestResolveProbesOnMiss(t *testing.T) {
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"nameless_version": "2.1.2"})
	}))
	defer srv.Close()

	cache := newFakeCache()
	creds := fakeCreds{creds: &nameless.Credentials{URL: srv.URL + "/", Key: "k"}}
	svc := NewService(cache, creds, nameless.NewRegistry(srv.Client()))

	v, err := svc.Resolve(context.Background(), "guild1")
	require.NoError(t, err)
	assert.Equal(t, 212, v)
	assert.Equal(t, int32(1), probes.Load())
	assert.Equal(t, 24*time.Hour, cache.setTTL)

	// The probed value is cached for the next call.
	v, err = svc.Resolve(context.Background(), "guild1")
	require.NoError(t, err)
	assert.Equal(t, 212, v)
	assert.Equal(t, int32(1), probes.Load())
}

func TestResolveNoCredentials(t *testing.T) {
	svc := NewService(newFakeCache(), fakeCreds{}, nameless.NewRegistry(http.DefaultClient))

	_, err := svc.Resolve(context.Background(), "guild1")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestResolveCorruptCacheEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"nameless_version": "2.1.3"})
	}))
	defer srv.Close()

	cache := newFakeCache()
	cache.entries["suggestionapi:guild1:version"] = "not-a-number"
	creds := fakeCreds{creds: &nameless.Credentials{URL: srv.URL + "/", Key: "k"}}
	svc := NewService(cache, creds, nameless.NewRegistry(srv.Client()))

	v, err := svc.Resolve(context.Background(), "guild1")
	require.NoError(t, err)
	assert.Equal(t, 213, v)
	assert.Equal(t, "213", cache.entries["suggestionapi:guild1:version"])
}
