package sidecar

import (
	"path/filepath"
	"strings"
	"time"

	"perch/internal/catalog"
)

// Document is the sidecar-visible slice of an item's metadata. Zero values
// mean "not set" and are skipped when rendering.
type Document struct {
	Tags        []string
	Rating      int
	Annotation  string
	SourceURL   string
	Identifier  string
	CaptureDate time.Time
}

// Empty reports whether the document carries no metadata at all.
func (d Document) Empty() bool {
	return len(d.Tags) == 0 && d.Rating == 0 && d.Annotation == "" &&
		d.SourceURL == "" && d.Identifier == "" && d.CaptureDate.IsZero()
}

// FromRecord maps a catalog record onto a sidecar document. The star rating
// is clamped to the XMP 0-5 range.
func FromRecord(rec *catalog.Record) Document {
	doc := Document{
		Annotation: rec.Annotation,
		SourceURL:  rec.URL,
		Identifier: rec.ID,
	}
	doc.Tags = append(doc.Tags, rec.Tags...)
	switch {
	case rec.Star < 0:
		doc.Rating = 0
	case rec.Star > 5:
		doc.Rating = 5
	default:
		doc.Rating = rec.Star
	}
	return doc
}

// Merge overlays next on top of existing: fields next sets win, fields it
// leaves empty keep their on-disk value.
func Merge(existing, next Document) Document {
	out := next
	if len(out.Tags) == 0 {
		out.Tags = existing.Tags
	}
	if out.Rating == 0 {
		out.Rating = existing.Rating
	}
	if out.Annotation == "" {
		out.Annotation = existing.Annotation
	}
	if out.SourceURL == "" {
		out.SourceURL = existing.SourceURL
	}
	if out.Identifier == "" {
		out.Identifier = existing.Identifier
	}
	if out.CaptureDate.IsZero() {
		out.CaptureDate = existing.CaptureDate
	}
	return out
}

// PathFor returns the sidecar path for a media file: the extension swapped
// for .xmp, or .xmp appended when the file has no extension.
func PathFor(mediaPath string) string {
	ext := filepath.Ext(mediaPath)
	if ext == "" {
		return mediaPath + ".xmp"
	}
	return strings.TrimSuffix(mediaPath, ext) + ".xmp"
}
