package services

import "github.com/google/uuid"

// Authorize allows a mutation only when the acting user owns the resource.
// Callers must have confirmed the resource exists first, so that a missing
// resource reports NotFound rather than Forbidden.
func Authorize(actorID, ownerID uuid.UUID, action string) error {
	if actorID == uuid.Nil || actorID != ownerID {
		return &Error{Kind: ErrForbidden, Message: "You are not authorized to " + action}
	}
	return nil
}
