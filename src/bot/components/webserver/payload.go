package webserver

import (
	"encoding/json"
	"errors"
	"strings"
)

type Event string

const (
	EventNewSuggestion    Event = "newSuggestion"
	EventNewComment       Event = "newSuggestionComment"
	EventVote             Event = "userSuggestionVote"
	EventDeleteComment    Event = "deleteSuggestionComment"
	EventDeleteSuggestion Event = "deleteSuggestion"
	EventUpdateSuggestion Event = "updateSuggestion"
)

var knownEvents = map[Event]bool{
	EventNewSuggestion:    true,
	EventNewComment:       true,
	EventVote:             true,
	EventDeleteComment:    true,
	EventDeleteSuggestion: true,
	EventUpdateSuggestion: true,
}

var errUnsupportedPayload = errors.New("webserver: unsupported webhook payload")

// Payload is the normalized form of an inbound webhook body. Everything past
// the parse step works on this shape regardless of which wire format the
// site sent.
type Payload struct {
	Event        Event
	SuggestionID string
	CommentID    string
	Username     string
	AvatarURL    string
}

type modernBody struct {
	Event        string `json:"event"`
	SuggestionID string `json:"suggestion_id"`
	CommentID    string `json:"comment_id"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatar_url"`
}

type legacyBody struct {
	AvatarURL string `json:"avatar_url"`
	Embeds    []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Footer struct {
			Text string `json:"text"`
		} `json:"footer"`
	} `json:"embeds"`
}

// ParsePayload normalizes either wire format. Modern sites send a structured
// body with an event discriminator; legacy sites send the Discord-style
// embed they would post themselves, and the event has to be inferred from
// its text fields.
func ParsePayload(body []byte) (*Payload, error) {
	var modern modernBody
	if err := json.Unmarshal(body, &modern); err == nil && modern.Event != "" {
		p := &Payload{
			Event:        Event(modern.Event),
			SuggestionID: modern.SuggestionID,
			CommentID:    modern.CommentID,
			Username:     modern.Username,
			AvatarURL:    modern.AvatarURL,
		}
		if !knownEvents[p.Event] || p.SuggestionID == "" {
			return nil, errUnsupportedPayload
		}
		return p, nil
	}

	var legacy legacyBody
	if err := json.Unmarshal(body, &legacy); err != nil || len(legacy.Embeds) == 0 {
		return nil, errUnsupportedPayload
	}

	embed := legacy.Embeds[0]
	p := &Payload{AvatarURL: legacy.AvatarURL}

	// Title looks like "#123 Some suggestion title".
	title := strings.Fields(embed.Title)
	if len(title) == 0 || !strings.HasPrefix(title[0], "#") {
		return nil, errUnsupportedPayload
	}
	p.SuggestionID = strings.TrimPrefix(title[0], "#")

	switch {
	case strings.Contains(embed.Footer.Text, "New suggestion"):
		p.Event = EventNewSuggestion
	case strings.Contains(embed.Footer.Text, "New comment"):
		p.Event = EventNewComment
		// The comment id rides in a "#comment-<id>" url fragment.
		if _, fragment, ok := strings.Cut(embed.URL, "#"); ok {
			if _, id, ok := strings.Cut(fragment, "-"); ok {
				p.CommentID = id
			}
		}
		if p.CommentID == "" {
			return nil, errUnsupportedPayload
		}
	default:
		return nil, errUnsupportedPayload
	}

	if p.SuggestionID == "" {
		return nil, errUnsupportedPayload
	}
	return p, nil
}
