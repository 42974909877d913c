package domain

import "strings"

// DefaultTitle is used when a photo arrives without a usable caption
const DefaultTitle = "Untitled"

// TitleFromCaption derives the record title from a photo caption.
// Only the text before the first comma is used; without a comma the whole
// caption is the title. A missing or blank caption yields fallback.
func TitleFromCaption(caption *string, fallback string) string {
	if fallback == "" {
		fallback = DefaultTitle
	}
	if caption == nil {
		return fallback
	}

	title, _, _ := strings.Cut(*caption, ",")
	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	return title
}
