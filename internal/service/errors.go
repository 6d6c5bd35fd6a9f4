package service

import (
	"errors"
	"fmt"

	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/repository"
)

// notFoundOr maps a missing row to NotFound and anything else to Internal.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound(fmt.Sprintf("%s %s not found", entity, id))
	}
	return domain.Internal("loading "+entity, err)
}

// classify passes domain errors through and reports everything else,
// such as a failed commit, as Internal.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(op, err)
}
