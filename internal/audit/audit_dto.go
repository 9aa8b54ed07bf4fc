package audit

import (
	"encoding/json"
	"time"
)

type AuditLogResponse struct {
	ID         string          `json:"id"`
	ActorID    *string         `json:"actor_id,omitempty"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id"`
	Action     string          `json:"action"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

func mapToResponse(l AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         l.ID.String(),
		Resource:   l.Resource,
		ResourceID: l.ResourceID,
		Action:     l.Action,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ActorID != nil {
		v := l.ActorID.String()
		resp.ActorID = &v
	}
	if len(l.Detail) > 0 {
		resp.Detail = json.RawMessage(l.Detail)
	}
	return resp
}

// ToListResponse exposes the response mapping to the admin dashboard.
func ToListResponse(logs []AuditLog) []AuditLogResponse {
	return mapToListResponse(logs)
}

func mapToListResponse(logs []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapToResponse(l)
	}
	return resp
}
