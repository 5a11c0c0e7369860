// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"errors"

	"github.com/bureau-foundation/mapstring/lib/mapstring"
)

// UserMessage is the message shown to users for any input that cannot
// be decoded. The cause is kept for logs.
const UserMessage = "incomplete or corrupted map string"

// ErrInputTooLarge is the cause of an InputError for input over the
// configured size cap.
var ErrInputTooLarge = errors.New("input exceeds size limit")

// InputError reports that the user's input is not a decodable
// exchange string.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return UserMessage + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// failureKind names the stage that rejected the input, for logging.
func failureKind(err error) string {
	var structural *mapstring.StructuralError
	if errors.As(err, &structural) {
		return "structural"
	}
	var decodeError *mapstring.Error
	if errors.As(err, &decodeError) {
		return string(decodeError.Kind)
	}
	if errors.Is(err, ErrInputTooLarge) {
		return "input_too_large"
	}
	return "unknown"
}
