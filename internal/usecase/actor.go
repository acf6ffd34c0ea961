package usecase

import (
	"context"
	"fmt"

	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrNoActor     = fmt.Errorf("%w: no authenticated user", ErrForbidden)
	ErrNotYourData = fmt.Errorf("%w: record belongs to another doctor", ErrForbidden)
)

// actor is the authenticated caller as placed in the context by the auth middleware.
type actor struct {
	ID   uuid.UUID
	Role entity.Role
}

func actorFromContext(ctx context.Context) (actor, error) {
	id, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || id == uuid.Nil {
		return actor{}, ErrNoActor
	}
	role, _ := middleware.GetRoleFromContext(ctx)
	return actor{ID: id, Role: role}, nil
}

func (a actor) isAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// owns reports whether the actor may see or modify data written by
// doctorID. Administrators own everything.
func (a actor) owns(doctorID uuid.UUID) bool {
	return a.isAdmin() || a.ID == doctorID
}
