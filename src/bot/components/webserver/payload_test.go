package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadModern(t *testing.T) {
	body := []byte(`{
		"event": "newSuggestionComment",
		"suggestion_id": "7",
		"comment_id": "99",
		"username": "Aberdeener",
		"avatar_url": "https://example.com/a.png"
	}`)

	p, err := ParsePayload(body)
	require.NoError(t, err)
	assert.Equal(t, EventNewComment, p.Event)
	assert.Equal(t, "7", p.SuggestionID)
	assert.Equal(t, "99", p.CommentID)
	assert.Equal(t, "Aberdeener", p.Username)
	assert.Equal(t, "https://example.com/a.png", p.AvatarURL)
}

func TestParsePayloadModernUnknownEvent(t *testing.T) {
	_, err := ParsePayload([]byte(`{"event": "somethingElse", "suggestion_id": "7"}`))
	assert.ErrorIs(t, err, errUnsupportedPayload)
}

func TestParsePayloadModernMissingSuggestion(t *testing.T) {
	_, err := ParsePayload([]byte(`{"event": "newSuggestion"}`))
	assert.ErrorIs(t, err, errUnsupportedPayload)
}

func TestParsePayloadLegacySuggestion(t *testing.T) {
	body := []byte(`{
		"avatar_url": "https://example.com/a.png",
		"embeds": [{
			"title": "#12 Add dark mode",
			"url": "https://example.com/suggestions/view/12",
			"footer": {"text": "New suggestion"}
		}]
	}`)

	p, err := ParsePayload(body)
	require.NoError(t, err)
	assert.Equal(t, EventNewSuggestion, p.Event)
	assert.Equal(t, "12", p.SuggestionID)
	assert.Empty(t, p.CommentID)
}

func TestParsePayloadLegacyComment(t *testing.T) {
	body := []byte(`{
		"embeds": [{
			"title": "#12 Add dark mode",
			"url": "https://example.com/suggestions/view/12#comment-345",
			"footer": {"text": "New comment"}
		}]
	}`)

	p, err := ParsePayload(body)
	require.NoError(t, err)
	assert.Equal(t, EventNewComment, p.Event)
	assert.Equal(t, "12", p.SuggestionID)
	assert.Equal(t, "345", p.CommentID)
}

func TestParsePayloadLegacyCommentWithoutID(t *testing.T) {
	body := []byte(`{
		"embeds": [{
			"title": "#12 Add dark mode",
			"url": "https://example.com/suggestions/view/12",
			"footer": {"text": "New comment"}
		}]
	}`)

	_, err := ParsePayload(body)
	assert.ErrorIs(t, err, errUnsupportedPayload)
}

func TestParsePayloadGarbage(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{}`,
		`{"embeds": []}`,
		`{"embeds": [{"title": "no id here", "footer": {"text": "New suggestion"}}]}`,
		`{"embeds": [{"title": "#12 title", "footer": {"text": "Something else"}}]}`,
	} {
		_, err := ParsePayload([]byte(body))
		assert.Error(t, err, body)
	}
}
