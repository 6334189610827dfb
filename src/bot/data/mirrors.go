package data

import (
	"fmt"

	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"gorm.io/gorm"
)

// Mirrors reads and writes the suggestion and comment mirror rows.
type Mirrors struct {
	db *gorm.DB
}

func NewMirrors(db *gorm.DB) *Mirrors {
	return &Mirrors{db: db}
}

func (m *Mirrors) SuggestionByID(guildID string, suggestionID uint64) (*types.Suggestion, error) {
	var row types.Suggestion
	err := m.db.Where("guild_id = ? AND suggestion_id = ?", guildID, suggestionID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("suggestion mirror by id: %w", err)
	}
	return &row, nil
}

func (m *Mirrors) SuggestionByMessage(guildID, messageID string) (*types.Suggestion, error) {
	var row types.Suggestion
	err := m.db.Where("guild_id = ? AND message_id = ?", guildID, messageID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("suggestion mirror by message: %w", err)
	}
	return &row, nil
}

func (m *Mirrors) CreateSuggestion(row *types.Suggestion) error {
	return m.db.Create(row).Error
}

func (m *Mirrors) DeleteSuggestion(row *types.Suggestion) error {
	return m.db.Delete(row).Error
}

// DeleteSuggestionsByChannel drops every mirror row bound to a channel.
// Fired when the channel itself disappears or the binding changes.
func (m *Mirrors) DeleteSuggestionsByChannel(channelID string) error {
	return m.db.Where("channel_id = ?", channelID).Delete(&types.Suggestion{}).Error
}

func (m *Mirrors) DeleteSuggestionByMessage(guildID, messageID string) error {
	return m.db.Where("guild_id = ? AND message_id = ?", guildID, messageID).Delete(&types.Suggestion{}).Error
}

func (m *Mirrors) CommentByID(guildID, channelID, commentID string) (*types.Comment, error) {
	var row types.Comment
	err := m.db.Where("guild_id = ? AND channel_id = ? AND comment_id = ?", guildID, channelID, commentID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("comment mirror by id: %w", err)
	}
	return &row, nil
}

func (m *Mirrors) CreateComment(row *types.Comment) error {
	return m.db.Create(row).Error
}

func (m *Mirrors) DeleteComment(row *types.Comment) error {
	return m.db.Delete(row).Error
}
