// Package organize moves media into a destination tree and generates XMP
// sidecars in place.
//
// A run enumerates a source (catalog or plain directory), filters items,
// resolves name conflicts per a run-wide policy, and copies what survives.
// Failures on individual items are recorded in the run Result and never
// abort the rest of the run; only startup-level problems (missing source,
// unwritable destination, failed preflight) stop a run before it begins.
// Runs are not atomic and are never rolled back.
package organize
