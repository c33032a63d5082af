package catalog

import (
	"strings"
	"time"
)

// Palette is a dominant color entry embedded in item metadata.
type Palette struct {
	Color []int   `json:"color"`
	Ratio float64 `json:"ratio"`
}

// Record mirrors the metadata.json stored beside each catalog asset.
//
// ID is unique within a catalog. Path and Dir are populated by the Reader
// and point at the asset on disk; a Record is only yielded when Path exists.
type Record struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Size             int64     `json:"size"`
	BTime            int64     `json:"btime"`
	MTime            int64     `json:"mtime"`
	Ext              string    `json:"ext"`
	Tags             []string  `json:"tags"`
	Folders          []string  `json:"folders"`
	IsDeleted        bool      `json:"isDeleted"`
	URL              string    `json:"url"`
	Annotation       string    `json:"annotation"`
	ModificationTime int64     `json:"modificationTime"`
	Star             int       `json:"star"`
	Height           int       `json:"height"`
	Width            int       `json:"width"`
	Palettes         []Palette `json:"palettes"`

	// Filled in by the Reader, not present in metadata.json.
	Path string `json:"-"`
	Dir  string `json:"-"`
}

// FileName returns the asset's display file name (Name plus extension).
func (r *Record) FileName() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = r.ID
	}
	ext := strings.TrimSpace(r.Ext)
	if ext == "" {
		return name
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}

// ModTime converts the catalog's millisecond timestamp to a time.Time.
// Falls back through mtime and btime; returns the zero time when none is set.
func (r *Record) ModTime() time.Time {
	for _, millis := range []int64{r.ModificationTime, r.MTime, r.BTime} {
		if millis > 0 {
			return time.UnixMilli(millis).UTC()
		}
	}
	return time.Time{}
}

// HasTag reports whether the record carries the given tag, comparing exactly.
func (r *Record) HasTag(tag string) bool {
	for _, candidate := range r.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}
