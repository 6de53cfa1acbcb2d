package service

import (
	"context"
	"errors"
	"fmt"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/notify"
	"crm-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePagination clamps caller-supplied paging to sane bounds and
// converts it into a limit/offset pair
func normalizePagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// resolveProfiles loads the referenced profiles, all of which must
// belong to the given organization
func resolveProfiles(repo repository.ProfileRepositoryInterface, orgID uuid.UUID, ids []uuid.UUID) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}
	profiles, err := repo.GetByIDs(orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned profiles: %w", err)
	}
	if len(profiles) != len(uniqueIDs(ids)) {
		return nil, apperrors.NewValidationError("assigned_to", "contains profiles outside the organization")
	}
	return profiles, nil
}

// resolveTeams loads the referenced teams, all of which must belong to
// the given organization
func resolveTeams(repo repository.TeamRepositoryInterface, orgID uuid.UUID, ids []uuid.UUID) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}
	teams, err := repo.GetByIDs(orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned teams: %w", err)
	}
	if len(teams) != len(uniqueIDs(ids)) {
		return nil, apperrors.NewValidationError("teams", "contains teams outside the organization")
	}
	return teams, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// dispatchEvent hands an event to the notification queue. Delivery is
// best effort; a failed enqueue never fails the request that caused it.
func dispatchEvent(dispatcher notify.Dispatcher, event notify.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Dispatch(context.Background(), event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":     event.Kind,
			"resource": event.ResourceType,
		}).Warn("failed to dispatch notification event")
	}
}

// translateNotFound maps a gorm missing-row error onto the entity's
// sentinel so handlers never see storage-layer errors
func translateNotFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
