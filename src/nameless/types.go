package nameless

// Credentials identify one NamelessMC installation. URL always carries a
// trailing slash (data.Guilds normalizes it).
type Credentials struct {
	URL string
	Key string
}

type WebsiteInfo struct {
	NamelessVersion string   `json:"nameless_version"`
	Locale          string   `json:"locale"`
	Modules         []string `json:"modules"`
}

type SuggestionAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type SuggestionStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Open  bool   `json:"open"`
	Color string `json:"color,omitempty"`
}

type SuggestionCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Suggestion struct {
	ID            string             `json:"id"`
	Link          string             `json:"link"`
	Author        SuggestionAuthor   `json:"author"`
	UpdatedBy     SuggestionAuthor   `json:"updated_by"`
	Status        SuggestionStatus   `json:"status"`
	Category      SuggestionCategory `json:"category"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Views         string             `json:"views"`
	Created       string             `json:"created"`
	LastUpdated   string             `json:"last_updated"`
	LikesCount    string             `json:"likes_count"`
	DislikesCount string             `json:"dislikes_count"`
	Likes         []int64            `json:"likes"`
	Dislikes      []int64            `json:"dislikes"`
}

type SuggestionListEntry struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	Status SuggestionStatus `json:"status"`
}

type SuggestionList struct {
	Suggestions []SuggestionListEntry `json:"suggestions"`
}

type CommentUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

type Comment struct {
	ID      int64       `json:"id"`
	User    CommentUser `json:"user"`
	Created string      `json:"created"`
	Content string      `json:"content"`
}

type CommentsResponse struct {
	Suggestion struct {
		ID string `json:"id"`
	} `json:"suggestion"`
	Comments []Comment `json:"comments"`
}

type User struct {
	Exists       bool   `json:"exists"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayname"`
	UUID         string `json:"uuid"`
	RegisteredAt int64  `json:"registered_timestamp"`
	LastOnlineAt int64  `json:"last_online_timestamp"`
	Banned       bool   `json:"banned"`
	Validated    bool   `json:"validated"`
	DiscordID    string `json:"discord_id"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

type CreateCommentResponse struct {
	CommentID int64 `json:"comment_id"`
}

type CreateSuggestionResponse struct {
	SuggestionID int64  `json:"suggestion_id"`
	Link         string `json:"link"`
}

type WebhookOptions struct {
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
}
