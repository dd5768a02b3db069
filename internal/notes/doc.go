// Package notes holds the in-memory note collection of one open profile.
//
// A Profile is loaded by the store package, mutated through the methods in
// this package and written back by an explicit save. Nothing here touches
// the filesystem. Identifiers are allocated by the profile, never by the
// caller, and are strictly increasing across the life of the profile: the
// high-water mark is kept in LastID so deleting the newest note does not
// free its identifier.
//
// Every mutation stamps the affected note's LastTouched with the profile
// clock, truncated to whole seconds so that it survives encoding.
package notes
