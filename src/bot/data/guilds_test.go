package data

import (
	"sync"
	"testing"

	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededGuilds(guild *types.Guild) *Guilds {
	g := NewGuilds(nil)
	g.cache[guild.ID] = guild
	return g
}

func TestGetReturnsCopy(t *testing.T) {
	g := seededGuilds(&types.Guild{ID: "guild1", APIURL: "https://example.com/", Language: "en_UK"})

	first, err := g.Get("guild1")
	require.NoError(t, err)

	// Mutating the returned struct must not leak into the store.
	first.APIURL = "https://tampered.example/"
	first.Language = "nl_NL"

	second, err := g.Get("guild1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", second.APIURL)
	assert.Equal(t, "en_UK", second.Language)
}

func TestConcurrentSettingsWriteAndCredentialsRead(t *testing.T) {
	g := seededGuilds(&types.Guild{ID: "guild1", APIURL: "https://example.com", APIKey: "key"})

	// A settings handler mutates the row it got from Get while webhook
	// goroutines resolve credentials for the same guild.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				guild, err := g.Get("guild1")
				if !assert.NoError(t, err) {
					return
				}
				guild.APIURL = "https://changed.example/"
				guild.APIKey = "rotated"
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				creds, err := g.Credentials("guild1")
				if !assert.NoError(t, err) || !assert.NotNil(t, creds) {
					return
				}
				assert.Equal(t, "https://example.com/", creds.URL)
				assert.Equal(t, "key", creds.Key)
			}
		}()
	}
	wg.Wait()
}
