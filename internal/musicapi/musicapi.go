// Package musicapi resolves track URLs from external providers into the
// metadata used to prefill the admin song form.
package musicapi

import (
	"errors"
	"time"
)

var (
	// ErrInvalidTrackURL indicates the supplied URL is not a recognized
	// track or video URL for the provider.
	ErrInvalidTrackURL = errors.New("invalid track URL")
	// ErrTrackNotFound indicates the provider has no record for the id.
	ErrTrackNotFound = errors.New("track not found")
)

// ArtistRef is one attributed artist with lookup metadata for the
// artists table upsert.
type ArtistRef struct {
	Name      string  `json:"name"`
	ImageURL  *string `json:"image_url,omitempty"`
	SpotifyID *string `json:"spotify_id,omitempty"`
}

// TrackMetadata is the provider-neutral result of resolving a track URL.
// Fields a provider cannot supply stay nil/empty.
type TrackMetadata struct {
	Title          string      `json:"title"`
	Artist         string      `json:"artist"`
	CoverURL       string      `json:"cover_url"`
	SpotifyTrackID string      `json:"spotify_track_id,omitempty"`
	YouTubeVideoID string      `json:"youtube_video_id,omitempty"`
	AlbumName      string      `json:"album_name,omitempty"`
	ReleaseDate    string      `json:"release_date,omitempty"`
	DurationMS     *int        `json:"duration_ms,omitempty"`
	Explicit       *bool       `json:"explicit,omitempty"`
	Popularity     *int        `json:"popularity,omitempty"`
	ISRC           string      `json:"isrc,omitempty"`
	TrackNumber    *int        `json:"track_number,omitempty"`
	DiscNumber     *int        `json:"disc_number,omitempty"`
	AlbumType      string      `json:"album_type,omitempty"`
	PreviewURL     string      `json:"preview_url,omitempty"`
	ChannelName    string      `json:"channel_name,omitempty"`
	Artists        []ArtistRef `json:"artists,omitempty"`
}

const requestTimeout = 30 * time.Second
