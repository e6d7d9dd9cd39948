package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewPublicID mints a stable surrogate identifier for records created at
// the data-entry boundary. Names are never used as runtime identity.
func NewPublicID() (string, error) {
	return gonanoid.New()
}

// MustPublicID is NewPublicID for call sites that cannot fail usefully;
// nanoid only errors when the system entropy source is broken.
func MustPublicID() string {
	return gonanoid.Must()
}
