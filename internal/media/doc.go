// Package media defines the item model shared by the searchers, filter, and
// organizer, plus the recognized media extension set and EXIF capture-date
// extraction.
package media
