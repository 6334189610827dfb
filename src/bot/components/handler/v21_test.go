package handler

import (
	"context"
	"testing"

	"github.com/nameless-community/nameless-suggestions/src/bot/components/suggestion"
	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"github.com/stretchr/testify/assert"
)

func TestCreateSuggestionSkipsMirroredSuggestion(t *testing.T) {
	// No session, no stores: touching either would panic. A suggestion that
	// already has a mirror row must return before any side effect, so a
	// duplicate webhook delivery produces no second message or row.
	h := newV21(NewCore(nil, nil, nil, nil))

	s := &suggestion.Suggestion{
		ID:      "7",
		GuildID: "guild1",
		APIData: &nameless.Suggestion{ID: "7", Title: "Add dark mode"},
		DBData:  &types.Suggestion{SuggestionID: 7, MessageID: "msg1", GuildID: "guild1"},
	}
	guild := &types.Guild{ID: "guild1", SuggestionChannel: "chan1"}

	assert.NoError(t, h.CreateSuggestion(context.Background(), s, guild))
	assert.NoError(t, h.CreateSuggestion(context.Background(), s, guild))
}

func TestCreateSuggestionSkipsWithoutChannel(t *testing.T) {
	h := newV21(NewCore(nil, nil, nil, nil))

	s := &suggestion.Suggestion{
		ID:      "7",
		GuildID: "guild1",
		APIData: &nameless.Suggestion{ID: "7"},
	}

	assert.NoError(t, h.CreateSuggestion(context.Background(), s, &types.Guild{ID: "guild1"}))
}

func TestReactionMustBeRemoved(t *testing.T) {
	apiData := &nameless.Suggestion{
		Likes:    []int64{1, 2, 3},
		Dislikes: []int64{4},
	}

	// A second press of the same button retracts the vote.
	assert.True(t, reactionMustBeRemoved(apiData, 2, nameless.ReactionLike))
	assert.True(t, reactionMustBeRemoved(apiData, 4, nameless.ReactionDislike))

	// A fresh vote, or a switch of sides, is an addition.
	assert.False(t, reactionMustBeRemoved(apiData, 9, nameless.ReactionLike))
	assert.False(t, reactionMustBeRemoved(apiData, 4, nameless.ReactionLike))
	assert.False(t, reactionMustBeRemoved(apiData, 2, nameless.ReactionDislike))

	assert.False(t, reactionMustBeRemoved(nil, 2, nameless.ReactionLike))
}

func TestParseStatusColor(t *testing.T) {
	v, ok := parseStatusColor("#21a9f3")
	assert.True(t, ok)
	assert.Equal(t, 0x21a9f3, v)

	v, ok = parseStatusColor("ff0000")
	assert.True(t, ok)
	assert.Equal(t, 0xff0000, v)

	_, ok = parseStatusColor("")
	assert.False(t, ok)
	_, ok = parseStatusColor("notacolor")
	assert.False(t, ok)
}

func TestAuthorAvatar(t *testing.T) {
	linked := &nameless.User{Exists: true, AvatarURL: "https://example.com/a 1.svg"}
	assert.Equal(t, "https://example.com/a1.png", authorAvatar(linked, "Someone"))

	// No linked account falls back to a generated avatar.
	fallback := authorAvatar(nil, "Someone")
	assert.Contains(t, fallback, "Someone")
}
