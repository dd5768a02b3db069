// Package secrets provides the cryptographic primitives behind encrypted
// theca profiles.
//
// # Encryption Architecture
//
// An encrypted profile is protected by a key derived from the user's
// passphrase:
//
//  1. A random 128-bit salt and the Argon2id cost parameters are chosen
//  2. DeriveKey stretches the passphrase into a 256-bit key
//  3. Seal encrypts the profile document with XChaCha20-Poly1305 under a
//     fresh random 192-bit nonce
//
// The salt, nonce and cost parameters are stored next to the ciphertext by
// the container package. Old profiles stay readable when DefaultKDFParams
// changes because the parameters used at write time travel with the file.
//
// # Failure Semantics
//
// DeriveKey fails with ErrKeyDerivation only for malformed parameters, never
// because of passphrase content. Open fails closed: a wrong key or any
// modification of the ciphertext, tag or associated data returns
// ErrWrongKeyOrCorruptData and no plaintext at all.
//
// # Security Considerations
//
// Nonces are never reused: every save of a profile draws a new salt and a
// new nonce. Keys and passphrases are kept only in memory and are not
// logged.
package secrets
