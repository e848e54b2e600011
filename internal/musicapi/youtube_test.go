package musicapi

import (
	"errors"
	"testing"
)

func TestParseVideoID(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?t=30&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"  dQw4w9WgXcQ  ", "dQw4w9WgXcQ", false},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", true},
		{"too-short", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseVideoID(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidTrackURL) {
				t.Errorf("ParseVideoID(%q) error = %v, want ErrInvalidTrackURL", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseVideoID(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestParseVideoTitle(t *testing.T) {
	cases := []struct {
		in         string
		wantTitle  string
		wantArtist string
	}{
		{"Radiohead - Karma Police", "Karma Police", "Radiohead"},
		{"Radiohead – Karma Police", "Karma Police", "Radiohead"},
		{"Radiohead — Karma Police", "Karma Police", "Radiohead"},
		{"Radiohead: Karma Police", "Karma Police", "Radiohead"},
		{"Radiohead | Karma Police", "Karma Police", "Radiohead"},
		{"Radiohead - Karma Police (Official Video)", "Karma Police", "Radiohead"},
		{"Radiohead - Karma Police [Official Audio]", "Karma Police", "Radiohead"},
		{"Radiohead - Karma Police (Lyrics)", "Karma Police", "Radiohead"},
		{"IU - Blueming MV", "Blueming", "IU"},
		{"IU - Blueming M/V", "Blueming", "IU"},
		{"Karma Police", "Karma Police", ""},
		{"Karma Police (Official Video)", "Karma Police", ""},
	}

	for _, tc := range cases {
		title, artist := parseVideoTitle(tc.in)
		if title != tc.wantTitle || artist != tc.wantArtist {
			t.Errorf("parseVideoTitle(%q) = %q, %q; want %q, %q",
				tc.in, title, artist, tc.wantTitle, tc.wantArtist)
		}
	}
}

func TestCleanChannelName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Radiohead - Topic", "Radiohead"},
		{"RadioheadVEVO", "Radiohead"},
		{"Radiohead Official", "Radiohead"},
		{"Radiohead", "Radiohead"},
	}

	for _, tc := range cases {
		if got := cleanChannelName(tc.in); got != tc.want {
			t.Errorf("cleanChannelName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in     string
		wantMS int
		ok     bool
	}{
		{"PT3M52S", 232000, true},
		{"PT1H2M3S", 3723000, true},
		{"PT45S", 45000, true},
		{"PT2M", 120000, true},
		{"PT1H", 3600000, true},
		{"P1DT2H", 0, false},
		{"garbage", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseISODuration(tc.in)
		if ok != tc.ok || got != tc.wantMS {
			t.Errorf("parseISODuration(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.wantMS, tc.ok)
		}
	}
}
