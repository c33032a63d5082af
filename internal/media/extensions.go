package media

import (
	"path/filepath"
	"strings"
)

// defaultExtensions is the built-in set of recognized image and video
// extensions, lowercase with leading dot.
var defaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff", ".tif",
	".heic", ".heif", ".dng", ".cr2", ".cr3", ".nef", ".arw", ".orf", ".raf",
	".mp4", ".mov", ".mkv", ".avi", ".webm", ".m4v", ".mts", ".m2ts",
}

// ExtensionSet answers membership questions about media file extensions.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from the given extensions, falling back to the
// built-in image/video set when none are provided. Entries are lowercased and
// get a leading dot when missing.
func NewExtensionSet(extensions []string) ExtensionSet {
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether path's extension is in the set.
func (s ExtensionSet) Contains(path string) bool {
	_, ok := s[strings.ToLower(filepath.Ext(path))]
	return ok
}
