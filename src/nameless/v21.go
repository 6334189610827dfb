package nameless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// v21 speaks the Suggestions module REST API shipped with the 2.1 site line.
type v21 struct {
	httpClient *http.Client
}

func newV21(httpClient *http.Client) *v21 {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &v21{httpClient: httpClient}
}

func (a *v21) MinVersion() int { return 210 }
func (a *v21) MaxVersion() int { return 220 }

func (a *v21) WebsiteInfo(ctx context.Context, creds Credentials) (*WebsiteInfo, error) {
	var info WebsiteInfo
	if err := a.get(ctx, creds, "info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (a *v21) CreateWebhook(ctx context.Context, creds Credentials, opts WebhookOptions) error {
	return a.post(ctx, creds, "webhooks/create", opts, nil)
}

func (a *v21) Suggestions(ctx context.Context, creds Credentials) (*SuggestionList, error) {
	var list SuggestionList
	if err := a.get(ctx, creds, "suggestions", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (a *v21) Suggestion(ctx context.Context, creds Credentials, id string) (*Suggestion, error) {
	var s Suggestion
	if err := a.get(ctx, creds, "suggestions/"+url.PathEscape(id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *v21) CreateReaction(ctx context.Context, creds Credentials, suggestionID string, kind ReactionType, discordID string, remove bool) error {
	body := map[string]interface{}{
		"user":   "integration_id:discord:" + discordID,
		"remove": remove,
	}
	route := fmt.Sprintf("suggestions/%s/%s", url.PathEscape(suggestionID), kind)
	return a.post(ctx, creds, route, body, nil)
}

func (a *v21) CreateComment(ctx context.Context, creds Credentials, suggestionID, content, discordID string) (*CreateCommentResponse, error) {
	body := map[string]interface{}{
		"user":    "integration_id:discord:" + discordID,
		"content": content,
	}
	var resp CreateCommentResponse
	if err := a.post(ctx, creds, "suggestions/"+url.PathEscape(suggestionID)+"/comment", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *v21) Comment(ctx context.Context, creds Credentials, suggestionID, commentID string) (*Comment, error) {
	var c Comment
	route := fmt.Sprintf("suggestions/%s/comments/&comment=%s", url.PathEscape(suggestionID), url.QueryEscape(commentID))
	if err := a.get(ctx, creds, route, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *v21) Comments(ctx context.Context, creds Credentials, suggestionID string) (*CommentsResponse, error) {
	var resp CommentsResponse
	if err := a.get(ctx, creds, "suggestions/"+url.PathEscape(suggestionID)+"/comments", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *v21) CreateSuggestion(ctx context.Context, creds Credentials, title, content, discordID string) (*CreateSuggestionResponse, error) {
	body := map[string]interface{}{
		"user":    "integration_id:discord:" + discordID,
		"title":   title,
		"content": content,
	}
	var resp CreateSuggestionResponse
	if err := a.post(ctx, creds, "suggestions/create", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *v21) User(ctx context.Context, creds Credentials, id string) (*User, error) {
	var u User
	if err := a.get(ctx, creds, "users/"+url.PathEscape(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *v21) UserByDiscordID(ctx context.Context, creds Credentials, discordID string) (*User, error) {
	var u User
	if err := a.get(ctx, creds, "users/integration_id:discord:"+url.PathEscape(discordID), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *v21) get(ctx context.Context, creds Credentials, route string, out interface{}) error {
	return a.do(ctx, http.MethodGet, creds, route, nil, out)
}

func (a *v21) post(ctx context.Context, creds Credentials, route string, body, out interface{}) error {
	return a.do(ctx, http.MethodPost, creds, route, body, out)
}

func (a *v21) do(ctx context.Context, method string, creds Credentials, route string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, creds.URL+route, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.Key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, route, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// The site reports domain errors as a JSON body with an "error" field,
	// sometimes with a 200 status.
	var apiErr struct {
		Error   string   `json:"error"`
		Message string   `json:"message"`
		Meta    []string `json:"meta"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
		return newAPIError(apiErr.Error, apiErr.Message, apiErr.Meta)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, route, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
