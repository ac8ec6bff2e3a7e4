package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(authURL, apiURL string) *Client {
	c := NewClient("cid", "csecret", nil)
	c.AuthURL = authURL
	c.APIURL = apiURL
	return c
}

func authServer(t *testing.T, hits *int64, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "cid", user)
		assert.Equal(t, "csecret", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + token + `","expires_in":3600}`))
	}))
}

const searchBody = `{"tracks":{"items":[
	{"name":"One","artists":[{"name":"A"},{"name":"B"}],"album":{"images":[{"url":"large"},{"url":"medium"},{"url":"tiny"}]}},
	{"name":"Two","artists":[{"name":"C"}],"album":{"images":[]}}
]}}`

func TestSearchSimplifiesTracks(t *testing.T) {
	var authHits int64
	auth := authServer(t, &authHits, "tok")
	defer auth.Close()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "daft punk", q.Get("q"))
		assert.Equal(t, "track", q.Get("type"))
		assert.Equal(t, "8", q.Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer api.Close()

	c := newTestClient(auth.URL, api.URL)
	res, err := c.Search(context.Background(), "daft punk")
	require.NoError(t, err)
	require.Len(t, res.Tracks, 2)
	assert.Equal(t, Track{Name: "One", Artists: "A, B", Image: "tiny"}, res.Tracks[0])
	assert.Equal(t, Track{Name: "Two", Artists: "C", Image: ""}, res.Tracks[1])
}

func TestAccessTokenIsCached(t *testing.T) {
	var authHits int64
	auth := authServer(t, &authHits, "tok")
	defer auth.Close()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer api.Close()

	c := newTestClient(auth.URL, api.URL)
	for i := 0; i < 3; i++ {
		_, err := c.Search(context.Background(), "q")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&authHits))
}

func TestSearchRetriesOnceOnUpstream401(t *testing.T) {
	var authHits, apiHits int64
	auth := authServer(t, &authHits, "tok")
	defer auth.Close()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&apiHits, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer api.Close()

	c := newTestClient(auth.URL, api.URL)
	res, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, res.Error)
	// token was re-fetched for the retry
	assert.Equal(t, int64(2), atomic.LoadInt64(&authHits))
	assert.Equal(t, int64(2), atomic.LoadInt64(&apiHits))
}

func TestSearchRateLimitedIsSoft(t *testing.T) {
	var authHits int64
	auth := authServer(t, &authHits, "tok")
	defer auth.Close()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer api.Close()

	c := newTestClient(auth.URL, api.URL)
	res, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "rate_limited", res.Error)
	assert.Empty(t, res.Tracks)
}

func TestAccessTokenAuthFailure(t *testing.T) {
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer auth.Close()

	c := newTestClient(auth.URL, "http://unused.invalid")
	_, err := c.Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrAuthFailed)
}
