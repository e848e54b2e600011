package musicapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

var spotifyTrackIDPattern = regexp.MustCompile(`track/([a-zA-Z0-9]+)`)

// SpotifyClient resolves open.spotify.com track URLs via the Web API,
// falling back to the public oEmbed endpoint when the API is unavailable.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.RWMutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a Spotify client using the client-credentials flow.
func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type spotifyImage struct {
	URL string `json:"url"`
}

type spotifySimpleArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type spotifyArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []spotifyImage `json:"images"`
}

type spotifyTrack struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Artists []spotifySimpleArtist `json:"artists"`
	Album   struct {
		Name        string         `json:"name"`
		ReleaseDate string         `json:"release_date"`
		AlbumType   string         `json:"album_type"`
		Images      []spotifyImage `json:"images"`
	} `json:"album"`
	DurationMS  int  `json:"duration_ms"`
	Explicit    bool `json:"explicit"`
	Popularity  int  `json:"popularity"`
	ExternalIDs struct {
		ISRC string `json:"isrc"`
	} `json:"external_ids"`
	TrackNumber int    `json:"track_number"`
	DiscNumber  int    `json:"disc_number"`
	PreviewURL  string `json:"preview_url"`
}

// authenticate obtains or refreshes the client-credentials access token.
func (c *SpotifyClient) authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.tokenExpiry) {
		return nil
	}

	authString := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://accounts.spotify.com/api/token", strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+authString)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify auth failed: %s - %s", resp.Status, string(body))
	}

	var tokenResp spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return nil
}

// doRequest performs an authenticated GET against the Web API.
func (c *SpotifyClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := c.authenticate(ctx); err != nil {
		return err
	}

	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.spotify.com/v1/"+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrTrackNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify api error: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// ParseTrackID extracts the track id from an open.spotify.com track URL.
func ParseTrackID(rawURL string) (string, error) {
	if !strings.Contains(rawURL, "open.spotify.com/track/") {
		return "", fmt.Errorf("%w: expected an open.spotify.com/track/ URL", ErrInvalidTrackURL)
	}
	match := spotifyTrackIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", fmt.Errorf("%w: could not extract track id", ErrInvalidTrackURL)
	}
	return match[1], nil
}

// LookupTrack resolves a track URL to full metadata. Artist image lookups
// are best effort: a failed artist fetch drops the image, not the track.
func (c *SpotifyClient) LookupTrack(ctx context.Context, rawURL string) (TrackMetadata, error) {
	trackID, err := ParseTrackID(rawURL)
	if err != nil {
		return TrackMetadata{}, err
	}

	var track spotifyTrack
	if err := c.doRequest(ctx, "tracks/"+trackID, &track); err != nil {
		if fallback, fbErr := c.lookupOEmbed(ctx, rawURL); fbErr == nil {
			return fallback, nil
		}
		return TrackMetadata{}, fmt.Errorf("fetch spotify track: %w", err)
	}

	names := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		names = append(names, artist.Name)
	}

	meta := TrackMetadata{
		Title:          track.Name,
		Artist:         strings.Join(names, ", "),
		SpotifyTrackID: track.ID,
		AlbumName:      track.Album.Name,
		ReleaseDate:    track.Album.ReleaseDate,
		AlbumType:      track.Album.AlbumType,
		DurationMS:     intPtr(track.DurationMS),
		Explicit:       boolPtr(track.Explicit),
		Popularity:     intPtr(track.Popularity),
		ISRC:           track.ExternalIDs.ISRC,
		TrackNumber:    intPtr(track.TrackNumber),
		DiscNumber:     intPtr(track.DiscNumber),
		PreviewURL:     track.PreviewURL,
	}
	if len(track.Album.Images) > 0 {
		meta.CoverURL = track.Album.Images[0].URL
	}

	for _, simple := range track.Artists {
		ref := ArtistRef{Name: simple.Name, SpotifyID: strPtr(simple.ID)}
		var full spotifyArtist
		if err := c.doRequest(ctx, "artists/"+simple.ID, &full); err == nil && len(full.Images) > 0 {
			ref.ImageURL = strPtr(full.Images[0].URL)
		}
		meta.Artists = append(meta.Artists, ref)
	}

	return meta, nil
}

type spotifyOEmbed struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// lookupOEmbed hits the public embed-metadata endpoint, which needs no
// credentials and returns only title, artist, and cover.
func (c *SpotifyClient) lookupOEmbed(ctx context.Context, rawURL string) (TrackMetadata, error) {
	endpoint := "https://open.spotify.com/oembed?url=" + url.QueryEscape(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TrackMetadata{}, fmt.Errorf("create oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TrackMetadata{}, fmt.Errorf("send oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TrackMetadata{}, fmt.Errorf("spotify oembed error: %s", resp.Status)
	}

	var embed spotifyOEmbed
	if err := json.NewDecoder(resp.Body).Decode(&embed); err != nil {
		return TrackMetadata{}, fmt.Errorf("decode oembed response: %w", err)
	}

	title, artist := splitDashTitle(embed.Title)
	return TrackMetadata{
		Title:    title,
		Artist:   artist,
		CoverURL: embed.ThumbnailURL,
	}, nil
}

var dashTitlePattern = regexp.MustCompile(`^(.+?)\s*[-–—]\s*(.+)$`)

// splitDashTitle splits oEmbed's "Title - Artist" composite; if no dash is
// present the whole string is the title.
func splitDashTitle(composite string) (title, artist string) {
	if match := dashTitlePattern.FindStringSubmatch(composite); match != nil {
		return strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
	}
	return composite, ""
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
