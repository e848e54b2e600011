package songs

// RatingColor maps a rating to its display color. The input is clamped to
// [0,100] here even though writes are validated, since historical rows may
// predate validation.
func RatingColor(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 100 {
		rating = 100
	}

	switch {
	case rating < 50:
		return "#FF0000"
	case rating < 70:
		return "#FFCC33"
	default:
		return "#66CC33"
	}
}
