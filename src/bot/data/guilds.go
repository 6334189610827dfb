package data

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"gorm.io/gorm"
)

// Guilds is the installation store. Rows are created on first reference and
// cached in-process; writers must go through Save so the cache stays honest.
// Get hands out copies, so callers can mutate the returned struct freely and
// concurrent readers never see a half-written row.
type Guilds struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]*types.Guild
}

func NewGuilds(db *gorm.DB) *Guilds {
	return &Guilds{
		db:    db,
		cache: make(map[string]*types.Guild),
	}
}

// Get returns a copy of the guild row, creating it when this is the first
// reference.
func (g *Guilds) Get(guildID string) (*types.Guild, error) {
	g.mu.RLock()
	cached, ok := g.cache[guildID]
	g.mu.RUnlock()
	if ok {
		cp := *cached
		return &cp, nil
	}

	guild := types.Guild{ID: guildID}
	if err := g.db.FirstOrCreate(&guild, types.Guild{ID: guildID}).Error; err != nil {
		return nil, fmt.Errorf("load guild %s: %w", guildID, err)
	}
	if guild.Language == "" {
		guild.Language = "en_UK"
	}

	g.mu.Lock()
	g.cache[guildID] = &guild
	g.mu.Unlock()

	cp := guild
	return &cp, nil
}

// ByAuthorizationKey looks up the installation a webhook token belongs to.
// Returns nil when the token is unknown or revoked.
func (g *Guilds) ByAuthorizationKey(key string) (*types.Guild, error) {
	var guild types.Guild
	err := g.db.Where("authorization_key = ?", key).First(&guild).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("guild by authorization key: %w", err)
	}
	return &guild, nil
}

// Credentials returns the API credentials for a guild, or nil when the
// installation has not been configured yet. The URL always ends in a slash.
func (g *Guilds) Credentials(guildID string) (*nameless.Credentials, error) {
	guild, err := g.Get(guildID)
	if err != nil {
		return nil, err
	}
	if guild.APIURL == "" {
		return nil, nil
	}
	url := guild.APIURL
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return &nameless.Credentials{URL: url, Key: guild.APIKey}, nil
}

// Save persists the row and refreshes the cache entry. The cache keeps its
// own copy; the caller's struct stays private to the caller.
func (g *Guilds) Save(guild *types.Guild) error {
	if err := g.db.Save(guild).Error; err != nil {
		return fmt.Errorf("save guild %s: %w", guild.ID, err)
	}
	cp := *guild
	g.mu.Lock()
	g.cache[guild.ID] = &cp
	g.mu.Unlock()
	return nil
}

// Remove deletes an installation and all of its mirror rows. Called when the
// bot leaves a guild.
func (g *Guilds) Remove(guildID string) error {
	if err := g.db.Where("guild_id = ?", guildID).Delete(&types.Suggestion{}).Error; err != nil {
		return err
	}
	if err := g.db.Where("guild_id = ?", guildID).Delete(&types.Comment{}).Error; err != nil {
		return err
	}
	if err := g.db.Where("id = ?", guildID).Delete(&types.Guild{}).Error; err != nil {
		return err
	}
	g.mu.Lock()
	delete(g.cache, guildID)
	g.mu.Unlock()
	return nil
}

// All lists every installation. Used by the console commands.
func (g *Guilds) All() ([]types.Guild, error) {
	var guilds []types.Guild
	if err := g.db.Find(&guilds).Error; err != nil {
		return nil, err
	}
	return guilds, nil
}
