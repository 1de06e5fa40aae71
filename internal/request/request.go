package request

import (
	"strings"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	requestDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/request"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Direction filters a listing relative to the caller.
type Direction string

const (
	DirectionAll      Direction = "all"
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// ParseDirection accepts incoming, outgoing or all. Empty means all.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DirectionAll:
		return DirectionAll, nil
	case DirectionIncoming:
		return DirectionIncoming, nil
	case DirectionOutgoing:
		return DirectionOutgoing, nil
	}
	return "", internal.NewValidationFieldError("type", "type must be one of incoming, outgoing, all", internal.ErrCodeInvalidDirection)
}

// Request asks the owner of a skill (ToID) for permission to view it.
type Request struct {
	ID        int64     `json:"id"`
	FromID    int64     `json:"from_id"`
	ToID      int64     `json:"to_id"`
	SkillID   int64     `json:"skill_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// Involves reports whether userID is the requester or the target.
func (r *Request) Involves(userID int64) bool {
	return r.FromID == userID || r.ToID == userID
}

func FromDataModel(r *requestDatamodel.Request) *Request {
	return &Request{
		ID:        r.ID,
		FromID:    r.FromID,
		ToID:      r.ToID,
		SkillID:   r.SkillID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
