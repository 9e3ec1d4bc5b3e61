package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const resumeJSON = `{
	"id": "r1",
	"title": "Backend Developer",
	"first_name": "Jane",
	"last_name": "Doe",
	"skill_set": ["Go", "Docker", "PostgreSQL"],
	"experience": [
		{"company": "Acme", "position": "Software Engineer", "start": "2019-01-01", "end": "2022-06-01"},
		{"company": "Globex", "position": "Lead Developer", "start": "2022-07-01", "end": null}
	],
	"education": {
		"level": {"id": "higher", "name": "Higher"},
		"primary": [{"name": "Moscow State University", "organization": "Computer Science", "result": "Master", "year": 2018}]
	}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/resumes/mine", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		page := r.URL.Query().Get("page")
		response := map[string]any{"pages": 2, "page": 0, "per_page": 1, "found": 2,
			"items": []map[string]any{{"id": "r1", "title": "Backend Developer"}}}
		if page == "1" {
			response["page"] = 1
			response["items"] = []map[string]any{{"id": "r2", "title": "Team Lead"}}
		}
		assert.NoError(t, json.NewEncoder(w).Encode(response))
	})
	mux.HandleFunc("/resumes/r1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		_, err := gz.Write([]byte(resumeJSON))
		assert.NoError(t, err)
	})
	mux.HandleFunc("/resumes/forbidden", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client := New(zap.NewNop(), "secret")
	client.APIURL = newTestServer(t).URL
	client.UserAgent = "test-agent"
	return client
}

func TestGetMineResumesFollowsPages(t *testing.T) {
	t.Parallel()

	resumes, err := newTestClient(t).GetMineResumes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resumes.Len())
	assert.Equal(t, []string{"Backend Developer", "Team Lead"}, resumes.Titles())
	assert.Equal(t, "r2", resumes.FindByTitle("Team Lead").ID)
	assert.Nil(t, resumes.FindByTitle("Missing"))
}

func TestGetResumeDetails(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)

	details, err := client.GetResumeDetails(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", details.ID)
	assert.Equal(t, "Backend Developer", details.Title)

	_, err = client.GetResumeDetails(context.Background(), "")
	require.Error(t, err)

	_, err = client.GetResumeDetails(context.Background(), "forbidden")
	require.ErrorContains(t, err, "bad status")
}

func TestResumeDetailsPlainText(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(resumeJSON), &raw))

	text, err := (&ResumeDetails{ID: "r1", Raw: raw}).PlainText()
	require.NoError(t, err)

	expected := "Jane Doe\n" +
		"Backend Developer\n" +
		"\n" +
		"Skills: Go, Docker, PostgreSQL\n" +
		"\n" +
		"Experience:\n" +
		"Software Engineer at Acme 2019 - 2022\n" +
		"Lead Developer at Globex 2022 - present\n" +
		"\n" +
		"Education:\n" +
		"Higher Master Moscow State University Computer Science 2018"
	assert.Equal(t, expected, text)
}

func TestResumeDetailsPlainTextFallsBackToTitle(t *testing.T) {
	t.Parallel()

	text, err := (&ResumeDetails{Title: "Analyst", Raw: map[string]any{}}).PlainText()
	require.NoError(t, err)
	assert.Equal(t, "Analyst", text)
}
