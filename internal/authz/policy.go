// Package authz holds the single authorization policy consulted by every
// service. Role and ownership rules live here and nowhere else.
package authz

import (
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
)

// Action is the operation being authorized against a resource
type Action string

const (
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionComment Action = "comment"
)

// Resource is implemented by every tenant-scoped model the policy can
// evaluate. Assignment accessors require their associations preloaded.
type Resource interface {
	GetOrganizationID() uuid.UUID
	GetCreatedByID() *uuid.UUID
	GetAssignedProfileIDs() []uuid.UUID
	GetAssignedTeamIDs() []uuid.UUID
}

// Options tunes per-entity rules. The defaults implement the uniform
// "admin or creator" delete policy.
type Options struct {
	// DeleteRequiresAdmin restricts delete to organization admins even
	// for the resource creator.
	DeleteRequiresAdmin bool
}

// Policy decides whether an acting profile may perform an action on a
// resource. It is stateless; all inputs arrive as arguments so there is
// no request-global state to leak between tenants.
type Policy struct{}

// NewPolicy creates the authorization policy
func NewPolicy() *Policy {
	return &Policy{}
}

// Authorize evaluates the ordered rule set and returns nil when the
// action is allowed. Rules, first match wins, default deny:
//
//  1. cross-tenant resources are rejected outright, before any role logic
//  2. organization admins and superusers may do anything in their org
//  3. the creator may read, update and comment; delete unless restricted
//  4. assigned profiles and members of assigned teams may read and comment
//  5. everything else is denied
func (pol *Policy) Authorize(p *models.Profile, res Resource, action Action, opts Options) error {
	if p == nil {
		return apperrors.ErrForbidden
	}

	// Tenant boundary first. This must not reveal whether the resource
	// exists in another organization, so callers surface it exactly like
	// a missing row.
	if res.GetOrganizationID() != p.OrganizationID {
		return apperrors.ErrCrossTenant
	}

	if p.IsAdmin() || p.User.IsSuperuser {
		return nil
	}

	if createdBy := res.GetCreatedByID(); createdBy != nil && *createdBy == p.ID {
		if action == ActionDelete && opts.DeleteRequiresAdmin {
			return apperrors.ErrAdminRequired
		}
		return nil
	}

	if action == ActionRead || action == ActionComment {
		if containsID(res.GetAssignedProfileIDs(), p.ID) {
			return nil
		}
		if overlaps(res.GetAssignedTeamIDs(), p.TeamIDs()) {
			return nil
		}
	}

	return apperrors.ErrForbidden
}

// CanManageOrg reports whether the profile may administer its
// organization (profiles, API keys, settings)
func (pol *Policy) CanManageOrg(p *models.Profile) error {
	if p == nil {
		return apperrors.ErrForbidden
	}
	if p.IsAdmin() || p.User.IsSuperuser {
		return nil
	}
	return apperrors.ErrAdminRequired
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func overlaps(a, b []uuid.UUID) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
