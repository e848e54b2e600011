package songs

import "testing"

func TestRatingColor(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{0, "#FF0000"},
		{49, "#FF0000"},
		{50, "#FFCC33"},
		{69, "#FFCC33"},
		{70, "#66CC33"},
		{100, "#66CC33"},
		{-10, "#FF0000"},
		{150, "#66CC33"},
	}

	for _, tc := range cases {
		if got := RatingColor(tc.rating); got != tc.want {
			t.Errorf("RatingColor(%d) = %s, want %s", tc.rating, got, tc.want)
		}
	}
}
