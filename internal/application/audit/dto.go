package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/audit"
)

// ActivityResponse represents an audit entry in API responses
type ActivityResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Email     string     `json:"email"`
	Fullname  string     `json:"fullname"`
	Action    string     `json:"action"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToActivityResponse converts a domain Activity to ActivityResponse
func ToActivityResponse(a *audit.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Email:     a.Email,
		Fullname:  a.Fullname,
		Action:    a.Action,
		CreatedAt: a.CreatedAt,
	}
}

// actorID converts the actor's ID to a nullable reference for storage
func actorID(actor audit.Actor) *uuid.UUID {
	if actor.ID == uuid.Nil {
		return nil
	}
	id := actor.ID
	return &id
}
