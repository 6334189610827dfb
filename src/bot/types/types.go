package types

// Guild is one installation: a Discord server bound to a NamelessMC site.
type Guild struct {
	ID                string `gorm:"primaryKey;size:32"`
	APIURL            string `gorm:"size:255"`
	APIKey            string `gorm:"size:128"`
	AuthorizationKey  string `gorm:"size:64;index"`
	SuggestionChannel string `gorm:"size:32"`
	Language          string `gorm:"size:8;default:en_UK"`
}

// Suggestion links a remote suggestion to the channel message mirroring it.
// At most one row exists per (GuildID, SuggestionID).
type Suggestion struct {
	ID           uint64 `gorm:"primaryKey"`
	SuggestionID uint64 `gorm:"not null;index:idx_guild_suggestion"`
	MessageID    string `gorm:"size:32;not null"`
	Status       int    `gorm:"not null"`
	URL          string `gorm:"size:255;not null"`
	GuildID      string `gorm:"size:32;not null;index:idx_guild_suggestion"`
	ChannelID    string `gorm:"size:32;not null"`
}

// Comment links a remote suggestion comment to the thread message relaying
// it, so a remote deletion can be mirrored back into the thread.
type Comment struct {
	ID           uint64 `gorm:"primaryKey"`
	SuggestionID uint64 `gorm:"not null"`
	CommentID    string `gorm:"size:32;not null;index:idx_guild_channel_comment"`
	GuildID      string `gorm:"size:32;not null;index:idx_guild_channel_comment"`
	ChannelID    string `gorm:"size:32;not null;index:idx_guild_channel_comment"`
	MessageID    string `gorm:"size:32;not null"`
}
