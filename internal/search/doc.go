// Package search enumerates candidate media items from a catalog or a raw
// directory tree.
//
// Both searchers push items to a caller-supplied function in the
// filepath.WalkDir idiom: enumeration is lazy, restartable, and stops as soon
// as the callback returns an error. ForRoot inspects the source root and
// picks the right variant so downstream code stays origin-agnostic.
//
// Emission order is traversal/provider order and carries no semantic weight;
// consumers must not depend on it for correctness.
package search
