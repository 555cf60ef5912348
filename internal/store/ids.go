package store

import "github.com/google/uuid"

// DefaultIDGenerator returns the production bookmark id source. The "b_"
// prefix is part of the persisted format.
func DefaultIDGenerator() func() string {
	return func() string {
		return "b_" + uuid.NewString()
	}
}
