package transport

import (
	"time"

	"rentcar-backend/internal/settings/repository"
)

type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToSettingResponse(s repository.Setting) SettingResponse {
	return SettingResponse{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}

func ToSettingResponses(settings []repository.Setting) []SettingResponse {
	out := make([]SettingResponse, len(settings))
	for i, s := range settings {
		out[i] = ToSettingResponse(s)
	}
	return out
}

type UpsertSettingRequest struct {
	Value string `json:"value" validate:"max=2000"`
}
