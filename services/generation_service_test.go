package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"postforge/apperr"
	"postforge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedPostWithSections(t *testing.T) {
	text := "Title: Launch Day\n" +
		"Body: We are live.\n" +
		"Grab the app today.\n" +
		"Hashtags: #launch #startup"

	out := ParseGeneratedPost(text)
	assert.Equal(t, "Launch Day", out.Title)
	assert.Equal(t, "We are live.\nGrab the app today.", out.Body)
	assert.Equal(t, "#launch #startup", out.Hashtags)
}

func TestParseGeneratedPostAlternateHeaders(t *testing.T) {
	text := "title: Quiet Drop\ncontent: Something new is here.\ntags: #new"

	out := ParseGeneratedPost(text)
	assert.Equal(t, "Quiet Drop", out.Title)
	assert.Equal(t, "Something new is here.", out.Body)
	assert.Equal(t, "#new", out.Hashtags)
}

func TestParseGeneratedPostHashtagsSpanLines(t *testing.T) {
	text := "Title: Sale\nBody: Everything half off.\nHashtags: #sale\n#deals"

	out := ParseGeneratedPost(text)
	assert.Equal(t, "#sale #deals", out.Hashtags)
}

func TestParseGeneratedPostWithoutHeaders(t *testing.T) {
	text := "Big news for makers\nThe workshop opens on Friday."

	out := ParseGeneratedPost(text)
	assert.Equal(t, "Big news for makers", out.Title)
	assert.Equal(t, "The workshop opens on Friday.", out.Body)
	assert.Empty(t, out.Hashtags)
}

func TestParseGeneratedPostEmpty(t *testing.T) {
	out := ParseGeneratedPost("")
	assert.Empty(t, out.Title)
	assert.Empty(t, out.Body)
	assert.Empty(t, out.Hashtags)
}

func newChatStub(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "quota exceeded"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestGeneratePostStoresParsedFields(t *testing.T) {
	srv := newChatStub(t, "Title: Hello\nBody: World.\nHashtags: #hi", http.StatusOK)
	defer srv.Close()
	t.Setenv("OPENAI_API_URL", srv.URL)

	db := newTestDB(t)
	user := createUser(t, db, "alice")
	team, err := NewTeamService(db).CreateTeam(user.ID, "Acme", "")
	require.NoError(t, err)

	svc := NewGenerationService(db)
	post, err := svc.GeneratePost(user.ID, team.ID, GeneratePostRequest{Prompt: "announce the launch"})
	require.NoError(t, err)

	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World.", post.Body)
	assert.Equal(t, "#hi", post.Hashtags)
	assert.Equal(t, models.PostStatusGenerated, post.Status)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, models.PostStatusGenerated, stored.Status)
	assert.Equal(t, "Hello", stored.Title)
}

func TestGeneratePostUpstreamFailureMarksFailed(t *testing.T) {
	srv := newChatStub(t, "", http.StatusTooManyRequests)
	defer srv.Close()
	t.Setenv("OPENAI_API_URL", srv.URL)

	db := newTestDB(t)
	user := createUser(t, db, "alice")
	team, err := NewTeamService(db).CreateTeam(user.ID, "Acme", "")
	require.NoError(t, err)

	svc := NewGenerationService(db)
	_, err = svc.GeneratePost(user.ID, team.ID, GeneratePostRequest{Prompt: "announce the launch"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	var stored models.Post
	require.NoError(t, db.Where("team_id = ?", team.ID).First(&stored).Error)
	assert.Equal(t, models.PostStatusFailed, stored.Status)
}

func TestGeneratePostBlankPromptFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewGenerationService(db)

	_, err := svc.GeneratePost(1, 1, GeneratePostRequest{Prompt: "  "})
	require.Error(t, err)

	// Nothing persisted on a rejected request.
	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEditImageAppendsRevision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/images/generations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://img.example/v2.png"}},
		})
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_URL", srv.URL)

	db := newTestDB(t)
	user := createUser(t, db, "alice")
	team, err := NewTeamService(db).CreateTeam(user.ID, "Acme", "")
	require.NoError(t, err)

	post := &models.Post{TeamID: team.ID, Prompt: "p", Status: models.PostStatusGenerated, CreatedBy: user.ID}
	require.NoError(t, db.Create(post).Error)
	root := &models.GeneratedImage{PostID: post.ID, Prompt: "a red bicycle", URL: "https://img.example/v1.png", CreatedBy: user.ID}
	require.NoError(t, db.Create(root).Error)

	svc := NewGenerationService(db)
	edited, err := svc.EditImage(user.ID, team.ID, root.ID, "make it blue")
	require.NoError(t, err)

	require.NotNil(t, edited.ParentID)
	assert.Equal(t, root.ID, *edited.ParentID)
	assert.Equal(t, post.ID, edited.PostID)
	assert.Equal(t, "https://img.example/v2.png", edited.URL)
	assert.Equal(t, "a red bicycle. make it blue", edited.Prompt)
}

func TestImageOperationsAreTeamScoped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for another team's content")
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_URL", srv.URL)

	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	aliceTeam, err := NewTeamService(db).CreateTeam(alice.ID, "Acme", "")
	require.NoError(t, err)
	bobTeam, err := NewTeamService(db).CreateTeam(bob.ID, "Globex", "")
	require.NoError(t, err)

	post := &models.Post{TeamID: bobTeam.ID, Prompt: "p", Status: models.PostStatusGenerated, CreatedBy: bob.ID}
	require.NoError(t, db.Create(post).Error)
	image := &models.GeneratedImage{PostID: post.ID, Prompt: "a red bicycle", URL: "https://img.example/v1.png", CreatedBy: bob.ID}
	require.NoError(t, db.Create(image).Error)

	svc := NewGenerationService(db)

	_, err = svc.GenerateImage(alice.ID, aliceTeam.ID, post.ID, "leak it")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.EditImage(alice.ID, aliceTeam.ID, image.ID, "leak it")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Nothing appended to the other team's revision chain.
	var count int64
	db.Model(&models.GeneratedImage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
