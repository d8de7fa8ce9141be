package transport

import (
	"time"

	"github.com/google/uuid"

	"rentcar-backend/internal/activitylog/repository"
)

type EntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Action    string     `json:"action"`
	Entity    string     `json:"entity"`
	EntityID  *string    `json:"entityId,omitempty"`
	Details   *string    `json:"details,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func ToEntryResponses(entries []repository.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
