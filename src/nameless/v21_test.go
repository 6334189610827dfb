package nameless

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (Credentials, *v21) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return Credentials{URL: srv.URL + "/", Key: "secret"}, newV21(srv.Client())
}

func TestV21WebsiteInfo(t *testing.T) {
	creds, api := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/info", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"nameless_version": "2.1.2",
			"modules":          []string{"Core", "Suggestions"},
		})
	})

	info, err := api.WebsiteInfo(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "2.1.2", info.NamelessVersion)
	assert.Contains(t, info.Modules, "Suggestions")
}

func TestV21DomainErrorOn200(t *testing.T) {
	creds, api := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "nameless:cannot_find_user",
			"message": "That user does not exist",
		})
	})

	_, err := api.UserByDiscordID(context.Background(), creds, "123456")
	require.Error(t, err)
	assert.True(t, IsCode(err, "cannot_find_user"))
}

func TestV21ValidationErrorMeta(t *testing.T) {
	creds, api := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "nameless:validation_errors",
			"meta":  []string{"Title is too short"},
		})
	})

	_, err := api.CreateSuggestion(context.Background(), creds, "a", "b", "123")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"Title is too short"}, apiErr.Meta)
}

func TestV21UnexpectedStatus(t *testing.T) {
	creds, api := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := api.Suggestion(context.Background(), creds, "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestV21CreateComment(t *testing.T) {
	creds, api := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/suggestions/7/comment", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "integration_id:discord:42", body["user"])
		assert.Equal(t, "hello", body["content"])

		json.NewEncoder(w).Encode(map[string]interface{}{"comment_id": 99})
	})

	resp, err := api.CreateComment(context.Background(), creds, "7", "hello", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(99), resp.CommentID)
}

func TestV21CreateReaction(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	creds, api := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte("{}"))
	})

	err := api.CreateReaction(context.Background(), creds, "7", ReactionDislike, "42", true)
	require.NoError(t, err)
	assert.Equal(t, "/suggestions/7/dislike", gotPath)
	assert.Equal(t, true, gotBody["remove"])
}
