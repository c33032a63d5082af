// Package sidecar renders and parses XMP sidecar files.
//
// A Document carries the metadata that survives outside the catalog: tags,
// rating, annotation, source URL, identifier, and capture date. Rendering
// emits a fixed line-oriented XMP packet (dc, xmp, and digiKam namespaces)
// that digiKam, Lightroom, and exiftool all accept; tags land in both
// dc:subject and digiKam:TagsList. Writing is atomic and, when merging is
// enabled, preserves fields already on disk that the new document leaves
// empty.
package sidecar
