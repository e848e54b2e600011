package musicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

var bareVideoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// YouTubeClient resolves video URLs via the YouTube Data API v3.
type YouTubeClient struct {
	apiKey     string
	httpClient *http.Client
}

// NewYouTubeClient creates a YouTube client with the given API key.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// ParseVideoID extracts the 11-character video id from a watch, short,
// or embed URL. A bare video id is accepted as-is.
func ParseVideoID(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[1], nil
		}
	}
	if bareVideoIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}
	return "", fmt.Errorf("%w: could not extract video id", ErrInvalidTrackURL)
}

type youtubeVideoList struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// LookupVideo resolves a video URL or bare id to track metadata, parsing
// the video title into artist and song title heuristically.
func (c *YouTubeClient) LookupVideo(ctx context.Context, rawURL string) (TrackMetadata, error) {
	videoID, err := ParseVideoID(rawURL)
	if err != nil {
		return TrackMetadata{}, err
	}

	endpoint := "https://www.googleapis.com/youtube/v3/videos?" + url.Values{
		"part": {"snippet,contentDetails"},
		"id":   {videoID},
		"key":  {c.apiKey},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TrackMetadata{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TrackMetadata{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return TrackMetadata{}, fmt.Errorf("youtube api error: %s - %s", resp.Status, string(body))
	}

	var list youtubeVideoList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return TrackMetadata{}, fmt.Errorf("decode response: %w", err)
	}
	if len(list.Items) == 0 {
		return TrackMetadata{}, ErrTrackNotFound
	}

	item := list.Items[0]
	title, artist := parseVideoTitle(item.Snippet.Title)
	if artist == "" {
		artist = cleanChannelName(item.Snippet.ChannelTitle)
	}

	meta := TrackMetadata{
		Title:          title,
		Artist:         artist,
		YouTubeVideoID: item.ID,
		ChannelName:    item.Snippet.ChannelTitle,
		CoverURL:       bestThumbnail(item.Snippet.Thumbnails),
	}
	if ms, ok := parseISODuration(item.ContentDetails.Duration); ok {
		meta.DurationMS = intPtr(ms)
	}
	if t := item.Snippet.PublishedAt; t != "" {
		meta.ReleaseDate = strings.SplitN(t, "T", 2)[0]
	}

	return meta, nil
}

// bestThumbnail prefers the highest resolution variant available.
func bestThumbnail(thumbs map[string]struct {
	URL string `json:"url"`
}) string {
	for _, key := range []string{"maxres", "high", "medium", "default"} {
		if thumb, ok := thumbs[key]; ok && thumb.URL != "" {
			return thumb.URL
		}
	}
	return ""
}

var (
	titleSeparatorPattern = regexp.MustCompile(`^(.+?)\s*[-–—:|]\s*(.+)$`)
	titleSuffixPattern    = regexp.MustCompile(`(?i)\s*[(\[](official\s*(music\s*)?(video|audio|lyric\s*video)|lyrics?|audio|visualizer|m/?v|hd|4k)[)\]]\s*$`)
	trailingMVPattern     = regexp.MustCompile(`(?i)\s+(MV|M/V)\s*$`)
)

// parseVideoTitle splits an "Artist - Title" video title and strips
// common suffixes like "(Official Video)". If no separator is found the
// whole cleaned string is the title and the artist is left empty.
func parseVideoTitle(raw string) (title, artist string) {
	cleaned := raw
	for {
		next := titleSuffixPattern.ReplaceAllString(cleaned, "")
		next = trailingMVPattern.ReplaceAllString(next, "")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	cleaned = strings.TrimSpace(cleaned)

	if match := titleSeparatorPattern.FindStringSubmatch(cleaned); match != nil {
		return strings.TrimSpace(match[2]), strings.TrimSpace(match[1])
	}
	return cleaned, ""
}

var channelSuffixPattern = regexp.MustCompile(`(?i)\s*(-\s*Topic|VEVO|Official)\s*$`)

// cleanChannelName strips auto-generated channel decorations so the
// channel can stand in for the artist when the title has no separator.
func cleanChannelName(channel string) string {
	return strings.TrimSpace(channelSuffixPattern.ReplaceAllString(channel, ""))
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO-8601 duration like PT3M52S to
// milliseconds.
func parseISODuration(raw string) (int, bool) {
	match := isoDurationPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return ((hours*60+minutes)*60 + seconds) * 1000, true
}
