// Package container turns a notes.Profile into the bytes stored on disk and
// back.
//
// A plaintext profile is stored as its codec document. An encrypted profile
// is stored as a single line of standard base64 followed by one newline.
// The decoded envelope is:
//
//	magic "THCA" | version 0x01 | kdf 0x01 (argon2id) |
//	time uint32 BE | memory KiB uint32 BE | threads uint8 |
//	salt length uint8 | salt | nonce (24 bytes) | ciphertext and tag
//
// Everything before the nonce is authenticated as associated data, so the
// key derivation parameters cannot be altered without detection. Any damage
// to an encrypted file is reported as ErrWrongKeyOrCorruptData; a document
// that authenticates but does not decode is ErrFormat.
package container
