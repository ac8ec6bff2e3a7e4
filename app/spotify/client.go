package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAuthURL = "https://accounts.spotify.com/api/token"
	defaultAPIURL  = "https://api.spotify.com"

	// refreshMargin expires cached tokens early so a request never leaves
	// with a token about to die mid-flight.
	refreshMargin = 30 * time.Second

	cacheKey = "spotify:access_token"
)

// ErrAuthFailed means the client-credentials exchange was rejected upstream.
var ErrAuthFailed = errors.New("spotify auth failed")

type Track struct {
	Name    string `json:"name"`
	Artists string `json:"artists"`
	Image   string `json:"image"`
}

// SearchResult carries either tracks or a soft error the UI can render
// (currently only "rate_limited").
type SearchResult struct {
	Tracks []Track `json:"tracks,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Client proxies the Spotify Web API with a cached client-credentials token.
// The cache is single-writer: refreshes serialize on the mutex so concurrent
// requests cannot stampede the token endpoint. When a Redis client is set,
// the token is mirrored there with a TTL so replicas share one grant.
type Client struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	APIURL       string
	HTTP         *http.Client
	Rdb          *redis.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewClient(clientID, clientSecret string, rdb *redis.Client) *Client {
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AuthURL:      defaultAuthURL,
		APIURL:       defaultAPIURL,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
		Rdb:          rdb,
	}
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.token != "" && now.Before(c.expiresAt.Add(-refreshMargin)) {
		return c.token, nil
	}
	if c.Rdb != nil {
		if cached, err := c.Rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			ttl, err := c.Rdb.TTL(ctx, cacheKey).Result()
			if err == nil && ttl > refreshMargin {
				c.token = cached
				c.expiresAt = now.Add(ttl)
				return cached, nil
			}
		}
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", ErrAuthFailed
	}
	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.AccessToken == "" {
		return "", ErrAuthFailed
	}
	if body.ExpiresIn <= 0 {
		body.ExpiresIn = 3600
	}
	c.token = body.AccessToken
	c.expiresAt = now.Add(time.Duration(body.ExpiresIn) * time.Second)
	if c.Rdb != nil {
		_ = c.Rdb.Set(ctx, cacheKey, c.token, time.Duration(body.ExpiresIn)*time.Second).Err()
	}
	return c.token, nil
}

func (c *Client) invalidate(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
	if c.Rdb != nil {
		_ = c.Rdb.Del(ctx, cacheKey).Err()
	}
}

// Search queries Spotify for tracks and trims the response down to what the
// UI needs. A 401 from the API invalidates the cached token and retries once;
// a 429 comes back as a soft rate_limited result, not a failure.
func (c *Client) Search(ctx context.Context, q string) (*SearchResult, error) {
	res, err := c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusUnauthorized {
		res.Body.Close()
		c.invalidate(ctx)
		if res, err = c.search(ctx, q); err != nil {
			return nil, err
		}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return &SearchResult{Error: "rate_limited"}, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify search: status %d", res.StatusCode)
	}

	var body struct {
		Tracks struct {
			Items []struct {
				Name    string `json:"name"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify search: decode: %w", err)
	}

	out := &SearchResult{Tracks: make([]Track, 0, len(body.Tracks.Items))}
	for _, item := range body.Tracks.Items {
		names := make([]string, 0, len(item.Artists))
		for _, a := range item.Artists {
			names = append(names, a.Name)
		}
		track := Track{Name: item.Name, Artists: strings.Join(names, ", ")}
		// smallest image is last in Spotify's ordering
		if n := len(item.Album.Images); n > 0 {
			track.Image = item.Album.Images[n-1].URL
		}
		out.Tracks = append(out.Tracks, track)
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, q string) (*http.Response, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	params := url.Values{
		"q":      {q},
		"type":   {"track"},
		"limit":  {"8"},
		"market": {"US"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+"/v1/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.HTTP.Do(req)
}
