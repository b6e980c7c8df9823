package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a time-ordered UUIDv7 string. Goals, entries and
// notifications sort by creation when compared by id.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fall back to a random v4 when the entropy source fails.
		return googleuuid.NewString()
	}
	return id.String()
}
