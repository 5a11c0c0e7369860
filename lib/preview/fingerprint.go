// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte keyed BLAKE3 digest of an exchange string
// payload.
type Fingerprint [32]byte

// fingerprintDomainKey separates payload fingerprints from any other
// BLAKE3 use. The bytes are the ASCII domain name, zero-padded.
var fingerprintDomainKey = [32]byte{
	'm', 'a', 'p', 's', 't', 'r', 'i', 'n', 'g', '.', 'p', 'a', 'y', 'l', 'o', 'a',
	'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// identifierBytes is how much of the fingerprint the identifier keeps.
const identifierBytes = 8

// FingerprintPayload hashes an extracted payload.
func FingerprintPayload(payload string) Fingerprint {
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("preview: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(payload))
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}

// String returns the full digest in hex.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Identifier returns the short name used for output files:
// "map-" followed by the first 16 hex digits of the digest.
func (f Fingerprint) Identifier() string {
	return "map-" + hex.EncodeToString(f[:identifierBytes])
}
