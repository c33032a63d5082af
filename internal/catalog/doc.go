// Package catalog reads Eagle-style media catalogs from disk.
//
// A catalog root contains an images/ directory with one folder per item,
// each holding the media asset plus a metadata.json describing its tags,
// rating, annotation, and provenance. The Reader enumerates usable records
// lazily and reports unusable item folders without aborting the scan, so a
// single corrupt metadata file never hides the rest of the library.
//
// The Record field names match the catalog's on-disk JSON exactly; treat
// records as read-only snapshots owned by the enumeration that produced them.
package catalog
