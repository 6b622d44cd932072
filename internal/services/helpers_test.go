// internal/services/helpers_test.go
package services

import "github.com/google/uuid"

func newUUID() uuid.UUID {
	return uuid.New()
}
