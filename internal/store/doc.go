// Package store reads and writes profile files in a profile folder.
//
// Each profile lives in <folder>/<name>.yaml. Saves are atomic: the packed
// profile is written to a temporary file in the same folder, synced, and
// renamed over the destination. Readers see either the old file or the new
// one, and a crash before the rename leaves the old file byte-for-byte
// intact.
//
// There is no locking. Two processes saving the same profile race and the
// last rename wins; theca is a single-user tool and does not try to detect
// this.
package store
