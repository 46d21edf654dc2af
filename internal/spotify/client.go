// Package spotify resolves mood playlists and, when credentials are
// configured, looks up their metadata from the Web API.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"mood-tracker/internal/config"
	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/logging"
	"mood-tracker/internal/mood"
)

const serviceName = "spotify"

// Client looks up playlist metadata using the client-credentials flow.
// Tokens are cached and refreshed by the underlying token source; successful
// metadata lookups are cached per playlist.
type Client struct {
	httpClient *http.Client
	apiBaseURL string

	mu    sync.Mutex
	cache map[string]*playlistResponse
}

// NewClient creates a client from configuration. Without credentials the
// client only builds embeds.
func NewClient(cfg config.SpotifyConfig) *Client {
	c := &Client{
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		cache:      make(map[string]*playlistResponse),
	}

	if !cfg.HasCredentials() {
		return c
	}

	ccfg := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	base := &http.Client{Timeout: cfg.Timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	c.httpClient = ccfg.Client(ctx)
	c.httpClient.Timeout = cfg.Timeout
	return c
}

// Enabled reports whether metadata lookups will be attempted
func (c *Client) Enabled() bool {
	return c.httpClient != nil
}

type playlistResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Playlist returns the embed for key. When the metadata lookup fails the
// embed is still returned alongside the error so callers can log it and
// carry on.
func (c *Client) Playlist(ctx context.Context, key mood.PlaylistKey, label string) (*Embed, error) {
	embed := NewEmbed(key, label)

	if !c.Enabled() {
		logging.Debugf("spotify credentials not configured, skipping metadata for %s\n", embed.Key)
		return embed, nil
	}

	c.mu.Lock()
	meta, ok := c.cache[embed.PlaylistID]
	c.mu.Unlock()

	if !ok {
		var err error
		meta, err = c.fetchPlaylist(ctx, embed.PlaylistID)
		if err != nil {
			return embed, err
		}
		c.mu.Lock()
		c.cache[embed.PlaylistID] = meta
		c.mu.Unlock()
	}

	embed.Title = meta.Name
	embed.Description = meta.Description
	return embed, nil
}

func (c *Client) fetchPlaylist(ctx context.Context, id string) (*playlistResponse, error) {
	endpoint := fmt.Sprintf("%s/playlists/%s?fields=%s", c.apiBaseURL, url.PathEscape(id), url.QueryEscape("name,description"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewUpstreamError(serviceName,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))).
			WithContext("status", resp.StatusCode)
	}

	var meta playlistResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, fmt.Errorf("decode playlist: %w", err))
	}

	logging.Debugf("spotify playlist %s resolved to %q\n", id, meta.Name)
	return &meta, nil
}
