package spotify

import (
	"net/url"

	"mood-tracker/internal/mood"
)

// EmbedBaseURL is the prefix of the embeddable player URL
const EmbedBaseURL = "https://open.spotify.com/embed/playlist/"

var playlistIDs = map[mood.PlaylistKey]string{
	mood.PlaylistChill: "37i9dQZF1DX4sWSpwq3LiO",
	mood.PlaylistPaced: "37i9dQZF1DXcBWIGoYBM5M",
	mood.PlaylistPanic: "37i9dQZF1DWZBCPUIus2iR",
}

// PlaylistID returns the Spotify playlist ID for key; unknown keys get the chill playlist
func PlaylistID(key mood.PlaylistKey) string {
	if id, ok := playlistIDs[key]; ok {
		return id
	}
	return playlistIDs[mood.PlaylistChill]
}

// EmbedURL returns the embeddable player URL for key
func EmbedURL(key mood.PlaylistKey) string {
	return EmbedBaseURL + url.PathEscape(PlaylistID(key)) + "?utm_source=generator"
}

// Embed describes the player shown for a mood
type Embed struct {
	Key         mood.PlaylistKey `json:"key"`
	PlaylistID  string           `json:"playlist_id"`
	URL         string           `json:"url"`
	Label       string           `json:"label"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
}

// NewEmbed builds the embed for key without any metadata lookup
func NewEmbed(key mood.PlaylistKey, label string) *Embed {
	if !key.IsValid() {
		key = mood.PlaylistChill
	}
	return &Embed{
		Key:        key,
		PlaylistID: PlaylistID(key),
		URL:        EmbedURL(key),
		Label:      label,
	}
}
