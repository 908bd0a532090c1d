package service

import (
	"errors"

	"github.com/aidar/task-management/internal/domain"
)

// notFoundAs replaces a repository absence signal with the entity-specific error.
// Any other error is returned unchanged.
func notFoundAs(err error, target *domain.Error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}
