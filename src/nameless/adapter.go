package nameless

import (
	"context"
	"strconv"
	"strings"
)

type ReactionType int

const (
	ReactionLike ReactionType = iota
	ReactionDislike
)

func (r ReactionType) String() string {
	if r == ReactionDislike {
		return "dislike"
	}
	return "like"
}

// Adapter implements the remote suggestion operations for one range of site
// versions. MaxVersion 0 means the range is open-ended.
type Adapter interface {
	MinVersion() int
	MaxVersion() int

	WebsiteInfo(ctx context.Context, creds Credentials) (*WebsiteInfo, error)
	CreateWebhook(ctx context.Context, creds Credentials, opts WebhookOptions) error
	Suggestions(ctx context.Context, creds Credentials) (*SuggestionList, error)
	Suggestion(ctx context.Context, creds Credentials, id string) (*Suggestion, error)
	CreateReaction(ctx context.Context, creds Credentials, suggestionID string, kind ReactionType, discordID string, remove bool) error
	CreateComment(ctx context.Context, creds Credentials, suggestionID, content, discordID string) (*CreateCommentResponse, error)
	Comment(ctx context.Context, creds Credentials, suggestionID, commentID string) (*Comment, error)
	Comments(ctx context.Context, creds Credentials, suggestionID string) (*CommentsResponse, error)
	CreateSuggestion(ctx context.Context, creds Credentials, title, content, discordID string) (*CreateSuggestionResponse, error)
	User(ctx context.Context, creds Credentials, id string) (*User, error)
	UserByDiscordID(ctx context.Context, creds Credentials, discordID string) (*User, error)
}

// ParseVersion derives the adapter-selection integer from the version string
// the site reports. Separators are dropped and the digits concatenated, so
// "2.1.3" becomes 213. Versions with differing digit counts can collide
// ("2.1.10" vs "2.11.0"); the upstream module versions in the wild do not.
func ParseVersion(s string) (int, error) {
	v, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ".", ""))
	if err != nil {
		return 0, err
	}
	return v, nil
}
