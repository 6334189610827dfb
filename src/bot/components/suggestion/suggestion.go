// Package suggestion provides the read-through views joining remote site
// data with the local mirror rows.
package suggestion

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/nameless-community/nameless-suggestions/src/bot/data"
	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"github.com/nameless-community/nameless-suggestions/src/nameless"
)

// ErrNoAPIData is returned when an accessor needs remote data that was not
// available, for example because the suggestion was deleted upstream.
var ErrNoAPIData = errors.New("suggestion: api data not loaded")

// Suggestion joins the remote suggestion, its local mirror row and its
// comment list. Any of the three may be absent; callers nil-check.
type Suggestion struct {
	ID      string
	GuildID string

	APIData  *nameless.Suggestion
	DBData   *types.Suggestion
	Comments *nameless.CommentsResponse

	api     nameless.Adapter
	creds   nameless.Credentials
	mirrors *data.Mirrors
}

// Fetch builds the aggregate and populates it. Remote absence is tolerated;
// only local store failures error out.
func Fetch(ctx context.Context, id, guildID string, api nameless.Adapter, creds nameless.Credentials, mirrors *data.Mirrors) (*Suggestion, error) {
	s := &Suggestion{
		ID:      id,
		GuildID: guildID,
		api:     api,
		creds:   creds,
		mirrors: mirrors,
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh repopulates remote data, mirror row and comments in that order.
func (s *Suggestion) Refresh(ctx context.Context) error {
	apiData, err := s.api.Suggestion(ctx, s.creds, s.ID)
	if err != nil {
		log.Printf("suggestion: no api data for %s in guild %s: %v", s.ID, s.GuildID, err)
		s.APIData = nil
	} else {
		s.APIData = apiData
	}

	numericID, err := strconv.ParseUint(s.ID, 10, 64)
	if err != nil {
		return errors.New("suggestion: non-numeric suggestion id " + s.ID)
	}
	row, err := s.mirrors.SuggestionByID(s.GuildID, numericID)
	if err != nil {
		return err
	}
	s.DBData = row

	comments, err := s.api.Comments(ctx, s.creds, s.ID)
	if err != nil {
		s.Comments = nil
	} else {
		s.Comments = comments
	}
	return nil
}

// Author resolves the remote profile of the suggestion's author.
func (s *Suggestion) Author(ctx context.Context) (*nameless.User, error) {
	if s.APIData == nil {
		return nil, ErrNoAPIData
	}
	return UserByID(ctx, s.APIData.Author.ID, s.api, s.creds), nil
}
